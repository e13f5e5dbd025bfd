package constants

// Base Routes
const (
	APIBasePath = "/api"
	HealthPath  = "/health"
	VersionPath = "/version"
	CatalogPath = "/api/catalog"
	RoutesPath  = "/api/routes"
)

// Authentication Routes
const (
	AuthBasePath     = "/api/auth"
	AuthRegisterPath = "/api/auth/signup"
	AuthLoginPath    = "/api/auth/login"
	AuthMePath       = "/api/auth/me"
)

// Profile Routes
const (
	ProfilesBasePath        = "/api/profiles"
	ProfileMePath           = "/api/profiles/me"
	ProfileSearchPath       = "/api/profiles/search"
	ProfileFeaturedPath     = "/api/profiles/featured"
	ProfileFeaturedNPath    = "/api/profiles/featured/{limit}"
	ProfileDetailPath       = "/api/profiles/{profileID}"
	ProfileDetailPathFormat = "/api/profiles/%s"
)

// Interest Routes
const (
	InterestsBasePath        = "/api/interests"
	InterestsReceivedPath    = "/api/interests/received"
	InterestsSentPath        = "/api/interests/sent"
	InterestDetailPath       = "/api/interests/{interestID}"
	InterestDetailPathFormat = "/api/interests/%s"
)

// URL Parameters
const (
	ParamProfileID  = "profileID"
	ParamInterestID = "interestID"
	ParamLimit      = "limit"
)

// Query Parameters
const (
	QueryParamProfileID = "profileId"
)
