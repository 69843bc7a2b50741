package handler

const (
	errInternalServer  = "Internal server error"
	errEmailTaken      = "Email already registered"
	errBadCredentials  = "Incorrect email or password"
	errUnauthorized    = "Unauthorized"
	errProjectNotFound = "Project not found"
	errInvalidStatus   = "Invalid status filter"
)
