package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/bookiown/backend/core/account"
	"github.com/bookiown/backend/core/invite"
)

// inviteDetail mirrors the invite retrieval shape: the sender reference
// populated into the full admin document.
type inviteDetail struct {
	invite.Invite
	Sender *account.Admin `json:"sender"`
}

func Test_inviteApi_create(t *testing.T) {
	resetDB(t)

	admin := createAdmin(t, "Ava", "Reed", "ava@test.com")
	teacher := createTeacher(t, "Tess", "Moya", "tess@test.com")
	adminToken := getToken(t, account.RoleAdmin, admin.Email)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Admin required", token: getToken(t, account.RoleTeacher, teacher.Email),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name:     "Key set is checked",
			body:     []byte(`{"email":"vera@test.com","note":"hi"}`),
			token:    adminToken,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "Missing keys: role. Extra keys: note."}),
		},
		{
			name:     "Role is validated",
			body:     []byte(`{"email":"vera@test.com","role":"principal"}`),
			token:    adminToken,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"role": "must be one of: admin, teacher, volunteer"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/invites"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Invite sent", func(t *testing.T) {
		body := []byte(`{"email":"vera@test.com","role":"volunteer"}`)
		req, rec := newAuthRequest(http.MethodPost, "/v1/invites", adminToken, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v; body %v", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var inv invite.Invite
		if err := json.Unmarshal(rec.Body.Bytes(), &inv); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if inv.Status != invite.StatusSent {
			t.Errorf("status = %q; want %q", inv.Status, invite.StatusSent)
		}
		if inv.Sender != admin.ID {
			t.Errorf("sender = %v; want %v", inv.Sender, admin.ID)
		}
		if inv.Code == "" {
			t.Error("code not set")
		}
	})

	t.Run("One invite per email", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusConflict,
			wantData: marchallObj(t, httpErr{Error: "invite already exists"}),
		}
		body := []byte(`{"email":"vera@test.com","role":"teacher"}`)
		req, rec := newAuthRequest(http.MethodPost, "/v1/invites", adminToken, body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}

func Test_inviteApi_lifecycle(t *testing.T) {
	resetDB(t)

	admin := createAdmin(t, "Ava", "Reed", "ava@test.com")
	inv := sendInvite(t, admin, "vera@test.com", "volunteer")
	adminToken := getToken(t, account.RoleAdmin, admin.Email)

	t.Run("Invitee retrieves without auth (sender populated)", func(t *testing.T) {
		detail := inviteDetail{Invite: inv, Sender: &admin}

		tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, detail)}
		req, rec := newRequest(http.MethodGet, "/v1/invites/"+inv.ID.Hex())
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Invitee marks it opened without auth", func(t *testing.T) {
		opened := inv
		opened.Status = invite.StatusOpened

		tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, opened)}
		req, rec := newRequest(http.MethodPatch, "/v1/invites/"+inv.ID.Hex()+"/opened")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Admin lists invites", func(t *testing.T) {
		current, err := inviteSvc.GetByID(context.Background(), inv.ID.Hex())
		if err != nil {
			t.Fatalf("GetByID(): %v", err)
		}

		tt := httpTest{wantCode: http.StatusOK, wantData: marchallList(t, current)}
		req, rec := newAuthRequest(http.MethodGet, "/v1/invites", adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Malformed ID", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "invalid invite ID"})}
		req, rec := newRequest(http.MethodGet, "/v1/invites/lol")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Admin deletes the invite", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/invites/"+inv.ID.Hex(), adminToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %v", rec.Code, http.StatusOK, rec.Body.String())
		}

		tt := httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "invite not found"})}
		req, rec = newRequest(http.MethodGet, "/v1/invites/"+inv.ID.Hex())
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}
