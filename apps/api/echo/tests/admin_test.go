package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/bookiown/backend/core/account"
)

func Test_adminApi_query(t *testing.T) {
	resetDB(t)

	admin1 := createAdmin(t, "Ava", "Reed", "ava@test.com")
	admin2 := createAdmin(t, "Ben", "Cole", "ben@test.com")
	teacher := createTeacher(t, "Tess", "Moya", "tess@test.com")

	adminToken := getToken(t, account.RoleAdmin, admin1.Email)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Admin required", token: getToken(t, account.RoleTeacher, teacher.Email),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{name: "Get all", token: adminToken, wantCode: http.StatusOK, wantData: marchallList(t, admin1, admin2)},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.path = "/v1/admins"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_adminApi_create(t *testing.T) {
	resetDB(t)

	admin := createAdmin(t, "Ava", "Reed", "ava@test.com")
	volunteer := createVolunteer(t, "Val", "Oba", "val@test.com")
	adminToken := getToken(t, account.RoleAdmin, admin.Email)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Admin required", token: getToken(t, account.RoleVolunteer, volunteer.Email),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name:     "Key set is checked",
			body:     []byte(`{"firstName":"Zoe","lastName":"Lum","email":"zoe@test.com","nickname":"Z"}`),
			token:    adminToken,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "Missing keys: approvalStatus. Extra keys: nickname."}),
		},
		{
			name:     "Empty value counts as present",
			body:     []byte(`{"firstName":"Zoe","lastName":"Lum","email":"zoe@test.com","approvalStatus":""}`),
			token:    adminToken,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"approvalStatus": "this field is required"}),
		},
		{
			name:     "Email is validated",
			body:     []byte(`{"firstName":"Zoe","lastName":"Lum","email":"nope","approvalStatus":"pending"}`),
			token:    adminToken,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "email must be a valid email address"}),
		},
		{
			name:     "Duplicate email rejected",
			body:     []byte(`{"firstName":"Ava","lastName":"Again","email":"ava@test.com","approvalStatus":"pending"}`),
			token:    adminToken,
			wantCode: http.StatusConflict,
			wantData: marchallObj(t, httpErr{Error: "email already exists"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/admins"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Admin created", func(t *testing.T) {
		body := []byte(`{"firstName":"  Zoe ","lastName":"Lum","email":"ZOE@Test.com","approvalStatus":"pending"}`)
		req, rec := newAuthRequest(http.MethodPost, "/v1/admins", adminToken, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v; body %v", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var adm account.Admin
		if err := json.Unmarshal(rec.Body.Bytes(), &adm); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if adm.ID.IsZero() {
			t.Error("ID not set")
		}
		if adm.FirstName != "Zoe" || adm.Email != "zoe@test.com" {
			t.Errorf("input not cleaned: %+v", adm)
		}
		if adm.Role != account.RoleAdmin {
			t.Errorf("role = %q; want %q", adm.Role, account.RoleAdmin)
		}

		// retrievable afterwards
		tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, adm)}
		req, rec = newAuthRequest(http.MethodGet, "/v1/admins/"+adm.ID.Hex(), adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}

func Test_adminApi_retrieve(t *testing.T) {
	resetDB(t)

	admin := createAdmin(t, "Ava", "Reed", "ava@test.com")
	adminToken := getToken(t, account.RoleAdmin, admin.Email)

	tests := []httpTest{
		{
			name: "Found", path: "/v1/admins/" + admin.ID.Hex(),
			wantCode: http.StatusOK, wantData: marchallObj(t, admin),
		},
		{
			name: "Not found", path: "/v1/admins/5fffffffffffffffffffffff",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "admin not found"}),
		},
		{
			name: "Malformed ID", path: "/v1/admins/lol",
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "invalid admin ID"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.token = adminToken

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_adminApi_changeApproval(t *testing.T) {
	resetDB(t)

	admin := createAdmin(t, "Ava", "Reed", "ava@test.com")
	pending := createAdmin(t, "Ben", "Cole", "ben@test.com")
	adminToken := getToken(t, account.RoleAdmin, admin.Email)

	approved := pending
	approved.ApprovalStatus = account.ApprovalApproved

	path := func(id string) string { return fmt.Sprintf("/v1/admins/%s/approval", id) }

	tests := []httpTest{
		{
			name: "Approved", path: path(pending.ID.Hex()),
			body:     []byte(`{"newApprovalStatus":"approved"}`),
			wantCode: http.StatusOK, wantData: marchallObj(t, approved),
		},
		{
			name: "Invalid status", path: path(pending.ID.Hex()),
			body:     []byte(`{"newApprovalStatus":"maybe"}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "invalid approval status"}),
		},
		{
			name: "Not found", path: path("5fffffffffffffffffffffff"),
			body:     []byte(`{"newApprovalStatus":"approved"}`),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "admin not found"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPatch
		tt.token = adminToken

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
