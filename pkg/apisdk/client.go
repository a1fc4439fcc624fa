package apisdk

import (
	"net/http"
	"strings"
	"time"
)

// AdminSessionCookie names the cookie carrying the admin console session.
const AdminSessionCookie = "zh_admin_session"

// SDKClient is a client for the ZeroHunger backend. It covers the public
// endpoints and creates AdminSessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// ValidateRequests makes the client reject invalid requests before
	// sending them. Tests that exercise server-side validation turn it off.
	// Default: true
	ValidateRequests bool
}

// NewSDKClient creates a client with request validation enabled.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		ValidateRequests: true,
	}
}
