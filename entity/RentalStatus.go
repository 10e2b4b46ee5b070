package entity

type RentalStatus string

const (
	RentalPending   RentalStatus = "pending"
	RentalConfirmed RentalStatus = "confirmed"
	RentalOngoing   RentalStatus = "ongoing"
	RentalCompleted RentalStatus = "completed"
	RentalCancelled RentalStatus = "cancelled"
)

func (s RentalStatus) IsValid() bool {
	switch s {
	case RentalPending, RentalConfirmed, RentalOngoing, RentalCompleted, RentalCancelled:
		return true
	}
	return false
}

func (s RentalStatus) IsTerminal() bool {
	return s == RentalCompleted || s == RentalCancelled
}

// ActiveRentalStatuses block the car's calendar.
func ActiveRentalStatuses() []RentalStatus {
	return []RentalStatus{RentalPending, RentalConfirmed, RentalOngoing}
}
