package model

// Address is a doctor's practice address
type Address struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
}

// Doctor describes a practitioner as served by /api/doctor/list
type Doctor struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Email       string          `json:"email,omitempty"`
	Image       string          `json:"image"`
	Speciality  string          `json:"speciality"`
	Degree      string          `json:"degree"`
	Experience  string          `json:"experience"`
	About       string          `json:"about"`
	Available   bool            `json:"available"`
	Fees        float64         `json:"fees"`
	Address     Address         `json:"address"`
	SlotsBooked BookedSlotIndex `json:"slots_booked"`
}
