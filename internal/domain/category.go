package domain

// Category is catalog reference data. Each category binds the SLA policy
// applied to tickets filed under it.
type Category struct {
	ID          int64
	Name        string
	SLAPolicyID int64
}

// Specialty is a technician skill tag used to match tickets to qualified
// technicians.
type Specialty struct {
	ID   int64
	Name string
}
