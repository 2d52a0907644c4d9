package tests

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/bookiown/backend/core/account"
	"github.com/bookiown/backend/core/invite"
)

func Test_accountApi_signup(t *testing.T) {
	resetDB(t)
	ctx := context.Background()

	admin := createAdmin(t, "Ava", "Reed", "ava@test.com")
	inv := sendInvite(t, admin, "vera@test.com", "volunteer")

	signupBody := func(accountJSON, role, inviteID string) []byte {
		return []byte(fmt.Sprintf(`{"account":%s,"role":%q,"inviteId":%q}`, accountJSON, role, inviteID))
	}

	tests := []httpTest{
		{
			name:     "Account object required",
			body:     []byte(`{"role":"volunteer","inviteId":"5fffffffffffffffffffffff"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "account is required"}),
		},
		{
			name:     "Key set is checked on the account object",
			body:     signupBody(`{"firstName":"Vera","lastName":"Lin","phone":"555"}`, "volunteer", inv.ID.Hex()),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "Missing keys: email. Extra keys: phone."}),
		},
		{
			name:     "Role is validated",
			body:     signupBody(`{"firstName":"Vera","lastName":"Lin","email":"vera@test.com"}`, "principal", inv.ID.Hex()),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"role": "must be one of: admin, teacher, volunteer"}),
		},
		{
			name:     "Unknown invite",
			body:     signupBody(`{"firstName":"Vera","lastName":"Lin","email":"vera@test.com"}`, "volunteer", "5fffffffffffffffffffffff"),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "invite not found"}),
		},
		{
			name:     "Malformed invite ID",
			body:     signupBody(`{"firstName":"Vera","lastName":"Lin","email":"vera@test.com"}`, "volunteer", "lol"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "invalid invite ID"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/accounts"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Signup completed", func(t *testing.T) {
		body := signupBody(`{"firstName":"Vera","lastName":"Lin","email":"vera@personal.com"}`, "volunteer", inv.ID.Hex())
		req, rec := newRequest(http.MethodPost, "/v1/accounts", body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v; body %v", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var vol account.Volunteer
		if err := json.Unmarshal(rec.Body.Bytes(), &vol); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if vol.Role != account.RoleVolunteer {
			t.Errorf("role = %q; want %q", vol.Role, account.RoleVolunteer)
		}
		if vol.ApprovalStatus != account.ApprovalPending {
			t.Errorf("approvalStatus = %q; want pending", vol.ApprovalStatus)
		}

		// the invite is completed and stamped with the signup email
		got, err := inviteSvc.GetByID(ctx, inv.ID.Hex())
		if err != nil {
			t.Fatalf("GetByID(): %v", err)
		}
		if got.Status != invite.StatusCompleted {
			t.Errorf("invite status = %q; want %q", got.Status, invite.StatusCompleted)
		}
		if got.Email != "vera@personal.com" {
			t.Errorf("invite email = %q; want the signup email", got.Email)
		}
	})
}

func Test_accountApi_retrieve(t *testing.T) {
	resetDB(t)

	admin := createAdmin(t, "Ava", "Reed", "ava@test.com")
	teacher := createTeacher(t, "Tess", "Moya", "tess@test.com")
	volunteer := createVolunteer(t, "Val", "Oba", "val@test.com")

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Admin gets own record", token: getToken(t, account.RoleAdmin, admin.Email),
			wantCode: http.StatusOK, wantData: marchallObj(t, admin),
		},
		{
			name: "Teacher gets own record", token: getToken(t, account.RoleTeacher, teacher.Email),
			wantCode: http.StatusOK, wantData: marchallObj(t, teacher),
		},
		{
			name: "Volunteer gets own record", token: getToken(t, account.RoleVolunteer, volunteer.Email),
			wantCode: http.StatusOK, wantData: marchallObj(t, volunteer),
		},
		{
			name: "No record for email", token: getToken(t, account.RoleAdmin, "ghost@test.com"),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "admin not found"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.path = "/v1/accounts"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
