// utils/http.go
package utils

import (
	"net/http"
	"time"
)

// HTTPClient is shared by the notification worker for push and SMS gateway
// calls.
var HTTPClient = &http.Client{
	Timeout: 30 * time.Second,
}
