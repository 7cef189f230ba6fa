package businessflow

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds client information used to correlate quote logs
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

func requestIDOf(metadata *ClientMetadata) string {
	if metadata == nil || metadata.RequestID == "" {
		return "-"
	}
	return metadata.RequestID
}
