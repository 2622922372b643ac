package server

// muxKeys describes enum with known API tokens.
type muxKeys string

const (
	// urlEntityID describes entity ID URL param.
	urlEntityID muxKeys = "entityID"
	// urlFlowID describes setup flow ID URL param.
	urlFlowID muxKeys = "flowID"
	// ctxtUserName describes user in the context.
	ctxtUserName muxKeys = "user"
	// routeAPI describes base api prefix.
	routeAPI = "/api/v1"
)
