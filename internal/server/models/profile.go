package models

import "time"

// Profile is the 1:1 identity record of a user. It is updated in place on
// import, never deleted or duplicated.
type Profile struct {
	OwnerID     string
	DisplayName string
	Timezone    string
	BirthDate   *time.Time
	HeightCm    *float64
	WeightKg    *float64
}
