package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
)

func TestMFAEnrollmentAndLogin(t *testing.T) {
	_, ts := newTestApp(t)
	client := ts.Client()

	email := fmt.Sprintf("mfa-%d@example.com", time.Now().UnixNano())
	registerUser(t, client, ts.URL, email, "secret1", "")
	token := login(t, client, ts.URL, email, "secret1")

	status, env := request(t, client, http.MethodPost, ts.URL+"/api/v1/auth/mfa/enroll", token, map[string]any{})
	if status != http.StatusOK {
		t.Fatalf("enrollment failed: %d %+v", status, env.Error)
	}
	var enrollment struct {
		Secret string `json:"secret"`
		URL    string `json:"otpauthUrl"`
	}
	mustDecode(t, env.Data, &enrollment)
	if enrollment.Secret == "" || enrollment.URL == "" {
		t.Fatalf("expected secret and otpauth url, got %+v", enrollment)
	}

	// Enrollment is pending until verified, so password login still works.
	login(t, client, ts.URL, email, "secret1")

	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	if err != nil {
		t.Fatalf("code generation failed: %v", err)
	}
	status, env = request(t, client, http.MethodPost, ts.URL+"/api/v1/auth/mfa/verify", token, map[string]any{"code": code})
	if status != http.StatusOK {
		t.Fatalf("verification failed: %d %+v", status, env.Error)
	}

	status, env = request(t, client, http.MethodPost, ts.URL+"/api/v1/auth/login", "", map[string]any{"email": email, "password": "secret1"})
	if status != http.StatusUnauthorized || env.Error == nil || env.Error.Code != "mfa_required" {
		var raw json.RawMessage
		if env.Error != nil {
			raw, _ = json.Marshal(env.Error)
		}
		t.Fatalf("expected mfa_required after verification, got %d %s", status, raw)
	}

	status, env = request(t, client, http.MethodPost, ts.URL+"/api/v1/auth/login", "", map[string]any{"email": email, "password": "secret1", "mfaCode": "000000"})
	if status != http.StatusUnauthorized || env.Error == nil || env.Error.Code != "mfa_invalid" {
		t.Fatalf("expected mfa_invalid for a wrong code, got %d %+v", status, env.Error)
	}

	code, err = totp.GenerateCode(enrollment.Secret, time.Now())
	if err != nil {
		t.Fatalf("code generation failed: %v", err)
	}
	status, env = request(t, client, http.MethodPost, ts.URL+"/api/v1/auth/login", "", map[string]any{"email": email, "password": "secret1", "mfaCode": code})
	if status != http.StatusOK {
		t.Fatalf("login with code failed: %d %+v", status, env.Error)
	}
	var data map[string]any
	mustDecode(t, env.Data, &data)
	if data["token"] == "" {
		t.Fatal("expected token in login response")
	}
}
