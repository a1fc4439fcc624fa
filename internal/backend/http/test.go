package http

import (
	"net/http"

	"github.com/zerohunger/backend/pkg/apisdk"
	"github.com/zerohunger/backend/pkg/httpx"
)

// TestHandler godoc
//
//	@Summary		Connectivity test
//	@Description	Lets the mobile client check that it can reach the API.
//	@Tags			API
//	@Produce		json
//	@Success		200	{object}	apisdk.TestResponse
//	@Router			/api/test [get].
func TestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, apisdk.TestResponse{
			Status:  "ok",
			Message: "ZeroHunger API is reachable",
		})
	}
}
