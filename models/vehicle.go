package models

// Vehicle is one fleet entry. Tracking here is registry-level only:
// model, plate, availability and the driver currently assigned.
type Vehicle struct {
	ID            string `json:"id"`
	Model         string `json:"model"`
	Type          string `json:"type"`
	PlateNumber   string `json:"plateNumber"`
	Status        string `json:"status"`
	CurrentDriver string `json:"currentDriver,omitempty"`
}

// ValidVehicleStatuses guards status updates from the fleet panel.
var ValidVehicleStatuses = map[string]bool{
	"Available":   true,
	"On Trip":     true,
	"Maintenance": true,
}
