package rest

const (
	// api
	RouteApi = "/api"

	// auth
	RouteAuth           = RouteApi + "/auth"
	RouteLogin          = RouteAuth + "/login"
	RouteRegister       = RouteAuth + "/register"
	RouteForgotPassword = RouteAuth + "/forgot-password"

	// documents
	RouteUpload    = RouteApi + "/upload"
	RouteDocuments = RouteApi + "/documents"
	RouteDocument  = RouteDocuments + "/:id"

	// admin, relative to RouteAdmin
	RouteAdmin              = RouteApi + "/admin"
	RouteAdminDocuments     = "/documents"
	RouteAdminDocument      = RouteAdminDocuments + "/:id"
	RouteAdminStats         = "/stats"
	RouteAdminUsers         = "/users"
	RouteAdminUserDocuments = RouteAdminUsers + "/:id/documents"

	// ops
	RouteHealth  = RouteApi + "/healthz"
	RouteMetrics = RouteApi + "/metrics"
)
