// Package authn exposes the admin login endpoint issuing bearer tokens for
// the dashboard.
package authn

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mechtronglobal/backend/server/auth"
	"github.com/mechtronglobal/backend/server/handler/common"
	"github.com/mechtronglobal/backend/server/resp"
	"github.com/mechtronglobal/backend/server/state"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

// HandleLogin checks the submitted credentials against the configured admin
// account and issues a signed token. Failures are reported uniformly so the
// response does not reveal which of the two fields was wrong.
func HandleLogin(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil {
			resp.WriteInvalidRequest(w, "invalid request body")
			return
		}

		if req.Username == "" || req.Password == "" {
			resp.WriteInvalidRequest(w, "username and password are required")
			return
		}

		authCfg := &st.Cfg.Auth
		usernameMatch := subtle.ConstantTimeCompare([]byte(req.Username), []byte(authCfg.AdminUsername)) == 1
		passwordErr := bcrypt.CompareHashAndPassword([]byte(authCfg.AdminPasswordHash), []byte(req.Password))

		if !usernameMatch || passwordErr != nil {
			resp.WriteUnauthorized(w, "invalid credentials")
			return
		}

		token, err := auth.IssueToken(authCfg, req.Username)
		if err != nil {
			common.LogAndWriteError(w, r, "login", err)
			return
		}

		resp.WriteOK(w, loginResponse{
			Success:   true,
			Token:     token,
			ExpiresIn: int64((time.Duration(authCfg.TokenTTLMinutes) * time.Minute).Seconds()),
		})
	}
}
