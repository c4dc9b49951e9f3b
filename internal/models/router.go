package models

// Router holds the metadata NetCloud reports for a single router.
type Router struct {
	Name         string `json:"name"`
	MAC          string `json:"mac"`
	SerialNumber string `json:"serial_number"`
}
