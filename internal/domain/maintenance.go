package domain

type Repair struct {
	ID           int64
	PlaneID      string
	RepairCode   string
	RepairDate   string
	TechnicianID string
}

type MaintenanceRequest struct {
	ID          int64
	PlaneID     string
	RepairCode  string
	RequestDate string
	PilotID     string
}
