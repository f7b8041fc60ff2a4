// Package integration provides end-to-end integration tests for the employees API.
// Tests the full session and CRUD flows against both PostgreSQL and MySQL databases.
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/employees/internal/app"
	authDTO "github.com/allisson/employees/internal/auth/http/dto"
	"github.com/allisson/employees/internal/config"
	employeeDTO "github.com/allisson/employees/internal/employee/http/dto"
	"github.com/allisson/employees/internal/testutil"
)

const testRefreshCookieName = "refreshToken"

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container     *app.Container
	db            *sql.DB
	server        *httptest.Server
	accessToken   string
	refreshCookie *http.Cookie
	dbDriver      string
}

// makeRequest performs an HTTP request and returns the response and body.
// When useAuth is set the stored access token is sent as a bearer credential;
// when useCookie is set the stored refresh cookie is attached.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body interface{},
	useAuth bool,
	useCookie bool,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if useAuth {
		req.Header.Set("Authorization", "Bearer "+ctx.accessToken)
	}

	if useCookie && ctx.refreshCookie != nil {
		req.AddCookie(&http.Cookie{Name: ctx.refreshCookie.Name, Value: ctx.refreshCookie.Value})
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// captureRefreshCookie stores the refresh cookie from a response for later requests.
func (ctx *integrationTestContext) captureRefreshCookie(t *testing.T, resp *http.Response) {
	t.Helper()

	for _, cookie := range resp.Cookies() {
		if cookie.Name == testRefreshCookieName {
			ctx.refreshCookie = cookie
			return
		}
	}
	t.Fatalf("response did not set the %s cookie", testRefreshCookieName)
}

// setupIntegrationTest initializes all components for integration testing.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	// Setup database
	var db *sql.DB
	var dsn string
	if dbDriver == "postgres" {
		db = testutil.SetupPostgresDB(t)
		dsn = testutil.GetPostgresTestDSN()
	} else {
		db = testutil.SetupMySQLDB(t)
		dsn = testutil.GetMySQLTestDSN()
	}

	// Create configuration
	cfg := &config.Config{
		ServerHost:             "localhost",
		ServerPort:             8080,
		DBDriver:               dbDriver,
		DBConnectionString:     dsn,
		DBMaxOpenConnections:   10,
		DBMaxIdleConnections:   5,
		DBConnMaxLifetime:      time.Hour,
		LogLevel:               "error",
		AccessTokenSecret:      "integration-access-secret",
		RefreshTokenSecret:     "integration-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		TokenIssuer:            "employees-integration-test",
		PasswordHashPolicy:     "interactive",
		RefreshCookieName:      testRefreshCookieName,
	}

	// Create DI container
	container := app.NewContainer(cfg)

	// Setup HTTP server
	httpSrv, err := container.HTTPServer()
	require.NoError(t, err, "failed to get HTTP server")

	handler := httpSrv.GetHandler()
	require.NotNil(t, handler, "handler should not be nil")

	// Create test server with the handler
	testServer := httptest.NewServer(handler)

	t.Logf("Integration test setup complete for %s", dbDriver)

	return &integrationTestContext{
		container: container,
		db:        db,
		server:    testServer,
		dbDriver:  dbDriver,
	}
}

// teardownIntegrationTest cleans up all resources.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	if ctx.server != nil {
		ctx.server.Close()
	}

	if ctx.container != nil {
		if err := ctx.container.Shutdown(context.Background()); err != nil {
			t.Logf("Warning: container shutdown error: %v", err)
		}
	}

	if ctx.db != nil {
		if ctx.dbDriver == "postgres" {
			testutil.CleanupPostgresDB(t, ctx.db)
		} else {
			testutil.CleanupMySQLDB(t, ctx.db)
		}
		testutil.TeardownDB(t, ctx.db)
	}

	t.Logf("Integration test teardown complete for %s", ctx.dbDriver)
}

// skipIfUnavailable skips the test when the given database is not reachable.
func skipIfUnavailable(t *testing.T, dbDriver string) {
	t.Helper()

	if dbDriver == "postgres" {
		testutil.SkipIfNoPostgres(t)
	} else {
		testutil.SkipIfNoMySQL(t)
	}
}

// errorCode extracts the error code from a structured error response body.
func errorCode(t *testing.T, body []byte) string {
	t.Helper()

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &response))
	code, _ := response["error"].(string)
	return code
}

// TestIntegration_Health_BasicChecks validates infrastructure health and readiness endpoints.
func TestIntegration_Health_BasicChecks(t *testing.T) {
	// Skip if short mode (integration tests can be slow)
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testCases := []struct {
		name     string
		dbDriver string
	}{
		{"PostgreSQL", "postgres"},
		{"MySQL", "mysql"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			skipIfUnavailable(t, tc.dbDriver)

			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			t.Run("01_HealthCheck", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/health", nil, false, false)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response map[string]string
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "healthy", response["status"])
			})

			t.Run("02_ReadinessCheck", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/ready", nil, false, false)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response map[string]string
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "ready", response["status"])
			})
		})
	}
}

// TestIntegration_Session_CompleteFlow tests the full session lifecycle:
// registration, login, token refresh and logout, including the error paths
// for missing and invalid credentials.
func TestIntegration_Session_CompleteFlow(t *testing.T) {
	// Skip if short mode (integration tests can be slow)
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testCases := []struct {
		name     string
		dbDriver string
	}{
		{"PostgreSQL", "postgres"},
		{"MySQL", "mysql"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			skipIfUnavailable(t, tc.dbDriver)

			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			registerRequest := authDTO.RegisterRequest{
				Name:          "Jane Doe",
				Age:           34,
				StillEmployee: true,
				Email:         "jane@example.com",
				Password:      "secret123",
			}

			t.Run("01_Register", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/api/v1/register", registerRequest, false, false)
				require.Equal(t, http.StatusCreated, resp.StatusCode)

				var response employeeDTO.EmployeeResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.NotEmpty(t, response.ID)
				assert.Equal(t, "jane@example.com", response.Email)
				assert.NotContains(t, string(body), "password")
				assert.NotContains(t, string(body), "access_token")

				ctx.captureRefreshCookie(t, resp)
				assert.True(t, ctx.refreshCookie.HttpOnly)
			})

			t.Run("02_RegisterDuplicateEmail", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/api/v1/register", registerRequest, false, false)
				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
				assert.Equal(t, "conflict", errorCode(t, body))
			})

			t.Run("03_LoginWrongPassword", func(t *testing.T) {
				loginRequest := authDTO.LoginRequest{Email: "jane@example.com", Password: "wrong-password"}
				resp, body := ctx.makeRequest(t, http.MethodPost, "/api/v1/login", loginRequest, false, false)
				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
				assert.Equal(t, "invalid_credentials", errorCode(t, body))
			})

			t.Run("04_Login", func(t *testing.T) {
				loginRequest := authDTO.LoginRequest{Email: "jane@example.com", Password: "secret123"}
				resp, body := ctx.makeRequest(t, http.MethodPost, "/api/v1/login", loginRequest, false, false)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var response authDTO.AccessTokenResponse
				require.NoError(t, json.Unmarshal(body, &response))
				require.NotEmpty(t, response.AccessToken)
				assert.Positive(t, response.ExpiresIn)

				ctx.accessToken = response.AccessToken
				ctx.captureRefreshCookie(t, resp)
			})

			t.Run("05_Refresh", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/api/v1/refresh", nil, false, true)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var response authDTO.AccessTokenResponse
				require.NoError(t, json.Unmarshal(body, &response))
				require.NotEmpty(t, response.AccessToken)

				ctx.accessToken = response.AccessToken
			})

			t.Run("06_RefreshWithoutCookie", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/api/v1/refresh", nil, false, false)
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
				assert.Equal(t, "unauthorized", errorCode(t, body))
			})

			t.Run("07_RefreshWithGarbageCookie", func(t *testing.T) {
				savedCookie := ctx.refreshCookie
				ctx.refreshCookie = &http.Cookie{Name: testRefreshCookieName, Value: "not-a-valid-token"}

				resp, body := ctx.makeRequest(t, http.MethodPost, "/api/v1/refresh", nil, false, true)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
				assert.Equal(t, "forbidden", errorCode(t, body))

				ctx.refreshCookie = savedCookie
			})

			t.Run("08_Logout", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/api/v1/logout", nil, false, true)
				assert.Equal(t, http.StatusNoContent, resp.StatusCode)
				assert.Empty(t, body)

				// The response clears the cookie
				for _, cookie := range resp.Cookies() {
					if cookie.Name == testRefreshCookieName {
						assert.Empty(t, cookie.Value)
						assert.Negative(t, cookie.MaxAge)
					}
				}
			})

			t.Run("09_RefreshAfterLogout", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/api/v1/refresh", nil, false, true)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
				assert.Equal(t, "forbidden", errorCode(t, body))
			})
		})
	}
}

// TestIntegration_Employee_CompleteFlow tests the token-gated CRUD endpoints:
// create, list, get, update and delete, including the authorization error paths.
func TestIntegration_Employee_CompleteFlow(t *testing.T) {
	// Skip if short mode (integration tests can be slow)
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testCases := []struct {
		name     string
		dbDriver string
	}{
		{"PostgreSQL", "postgres"},
		{"MySQL", "mysql"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			skipIfUnavailable(t, tc.dbDriver)

			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			// Register and login to obtain an access token
			registerRequest := authDTO.RegisterRequest{
				Name:          "Admin User",
				Age:           40,
				StillEmployee: true,
				Email:         "admin@example.com",
				Password:      "secret123",
			}
			resp, _ := ctx.makeRequest(t, http.MethodPost, "/api/v1/register", registerRequest, false, false)
			require.Equal(t, http.StatusCreated, resp.StatusCode)

			loginRequest := authDTO.LoginRequest{Email: "admin@example.com", Password: "secret123"}
			resp, body := ctx.makeRequest(t, http.MethodPost, "/api/v1/login", loginRequest, false, false)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var tokenResponse authDTO.AccessTokenResponse
			require.NoError(t, json.Unmarshal(body, &tokenResponse))
			ctx.accessToken = tokenResponse.AccessToken

			var createdEmployeeID string

			t.Run("01_CreateWithoutToken", func(t *testing.T) {
				createRequest := employeeDTO.CreateEmployeeRequest{
					Name:          "John Smith",
					Age:           28,
					StillEmployee: true,
					Email:         "john@example.com",
					Password:      "secret123",
				}
				resp, body := ctx.makeRequest(t, http.MethodPost, "/api/v1/save", createRequest, false, false)
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
				assert.Equal(t, "unauthorized", errorCode(t, body))
			})

			t.Run("02_CreateWithInvalidToken", func(t *testing.T) {
				savedToken := ctx.accessToken
				ctx.accessToken = "not-a-valid-token"

				createRequest := employeeDTO.CreateEmployeeRequest{
					Name:          "John Smith",
					Age:           28,
					StillEmployee: true,
					Email:         "john@example.com",
					Password:      "secret123",
				}
				resp, body := ctx.makeRequest(t, http.MethodPost, "/api/v1/save", createRequest, true, false)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
				assert.Equal(t, "forbidden", errorCode(t, body))

				ctx.accessToken = savedToken
			})

			t.Run("03_Create", func(t *testing.T) {
				createRequest := employeeDTO.CreateEmployeeRequest{
					Name:          "John Smith",
					Age:           28,
					StillEmployee: true,
					Email:         "john@example.com",
					Password:      "secret123",
				}
				resp, body := ctx.makeRequest(t, http.MethodPost, "/api/v1/save", createRequest, true, false)
				require.Equal(t, http.StatusCreated, resp.StatusCode)

				var response employeeDTO.EmployeeResponse
				require.NoError(t, json.Unmarshal(body, &response))
				require.NotEmpty(t, response.ID)
				assert.Equal(t, "john@example.com", response.Email)
				assert.NotContains(t, string(body), "password")

				createdEmployeeID = response.ID
			})

			t.Run("04_List", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/api/v1/employees", nil, true, false)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var response employeeDTO.ListEmployeesResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Len(t, response.Data, 2)
			})

			t.Run("05_Get", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/api/v1/employees/"+createdEmployeeID, nil, true, false)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var response employeeDTO.EmployeeResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, createdEmployeeID, response.ID)
				assert.Equal(t, "John Smith", response.Name)
			})

			t.Run("06_GetInvalidID", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/api/v1/employees/not-a-uuid", nil, true, false)
				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
				assert.Equal(t, "validation_error", errorCode(t, body))
			})

			t.Run("07_GetUnknownID", func(t *testing.T) {
				unknownID := "0198c1a2-7f43-7000-8000-000000000000"
				resp, body := ctx.makeRequest(t, http.MethodGet, "/api/v1/employees/"+unknownID, nil, true, false)
				assert.Equal(t, http.StatusNotFound, resp.StatusCode)
				assert.Equal(t, "not_found", errorCode(t, body))
			})

			t.Run("08_Update", func(t *testing.T) {
				newName := "John A. Smith"
				newAge := 29
				updateRequest := employeeDTO.UpdateEmployeeRequest{
					ID:   createdEmployeeID,
					Name: &newName,
					Age:  &newAge,
				}
				resp, body := ctx.makeRequest(t, http.MethodPut, "/api/v1/employees", updateRequest, true, false)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var response employeeDTO.EmployeeResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "John A. Smith", response.Name)
				assert.Equal(t, 29, response.Age)
				assert.Equal(t, "john@example.com", response.Email)
			})

			t.Run("09_Delete", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodDelete, "/api/v1/employees/"+createdEmployeeID, nil, true, false)
				assert.Equal(t, http.StatusNoContent, resp.StatusCode)
				assert.Empty(t, body)
			})

			t.Run("10_DeleteAlreadyDeleted", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodDelete, "/api/v1/employees/"+createdEmployeeID, nil, true, false)
				assert.Equal(t, http.StatusNotFound, resp.StatusCode)
				assert.Equal(t, "not_found", errorCode(t, body))
			})
		})
	}
}
