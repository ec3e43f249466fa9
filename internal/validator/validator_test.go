package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/edutrack/edutrack-backend/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
	Setup()
}

func bindJSON(body string) map[string]string {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req model.SignupRequest
	return Bind(c, &req)
}

func TestBind_Signup(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{name: "valid", body: `{"name":"A","email":"a@example.com","password":"secret1","role":"teacher"}`},
		{name: "bad role", body: `{"name":"A","email":"a@example.com","password":"secret1","role":"admin"}`, wantField: "role"},
		{name: "bad email", body: `{"name":"A","email":"nope","password":"secret1","role":"student"}`, wantField: "email"},
		{name: "short password", body: `{"name":"A","email":"a@example.com","password":"x","role":"student"}`, wantField: "password"},
		{name: "missing name", body: `{"email":"a@example.com","password":"secret1","role":"student"}`, wantField: "name"},
		{name: "malformed json", body: `{`, wantField: "detail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := bindJSON(tt.body)
			if tt.wantField == "" {
				assert.Nil(t, fields)
				return
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestBind_RoleMessage(t *testing.T) {
	fields := bindJSON(`{"name":"A","email":"a@example.com","password":"secret1","role":"admin"}`)
	assert.Equal(t, "role must be either teacher or student", fields["role"])
}

func TestBindForm_UsesFormNames(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("notes=hi"))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var req model.CreateSubmissionRequest
	fields := BindForm(c, &req)
	assert.Contains(t, fields, "assignment_id")
}
