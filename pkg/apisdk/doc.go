/*
Package apisdk is a Go client for the ZeroHunger backend.

# SDKClient vs AdminSession

SDKClient covers the public API: the test endpoint, account creation and
lookup, and the health probes.

	client := apisdk.NewSDKClient("http://localhost:8080")

	user, err := client.CreateUser(ctx, apisdk.CreateUserRequest{
		Email:    "donor@example.org",
		Username: "donor",
		Password: "correct horse battery staple",
	})

	same, err := client.GetUserByEmail(ctx, "donor@example.org")

Staff accounts can log into the admin console, which yields an AdminSession
carrying the session cookie:

	admin, err := client.AdminLogin(ctx, "admin@example.org", password)
	page, err := admin.ListUsers(ctx, 25, 0)

# Errors

Any non-2xx response is returned as *APIError. Validation failures carry the
offending fields in Details:

	var apiErr *apisdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == apisdk.ErrorCodeEmailTaken {
		// ask for another address
	}

The same types are used by the server to write its responses, so the wire
format has a single definition.
*/
package apisdk
