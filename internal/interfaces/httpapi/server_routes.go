package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/phases", handler.ListPhases)
	mux.HandleFunc("GET /v1/schedule/current", handler.GetCurrentSchedule)
	mux.HandleFunc("GET /v1/schedule/weeks/{weekID}", handler.GetWeekPhases)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/commands", handler.ListCommands)
}

func registerGatewayRoutes(mux *http.ServeMux, handler *Handler, gatewayToken string) {
	mux.Handle("PUT /v1/schedule/weeks/{weekID}", RequireGateway(gatewayToken, http.HandlerFunc(handler.SetWeekPhases)))
	mux.Handle("POST /v1/rosters/roll", RequireGateway(gatewayToken, http.HandlerFunc(handler.RollRoster)))
	mux.Handle("GET /v1/rosters/me", RequireGateway(gatewayToken, http.HandlerFunc(handler.GetMyRoster)))
	mux.Handle("POST /v1/scores", RequireGateway(gatewayToken, http.HandlerFunc(handler.SubmitScore)))
	mux.Handle("GET /v1/scores/me", RequireGateway(gatewayToken, http.HandlerFunc(handler.GetMyScore)))
}
