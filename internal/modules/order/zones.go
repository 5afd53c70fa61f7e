package order

import "strings"

// Tricycle delivery areas: nearby barangays served on flexible schedules.
var tricycleBarangays = []string{
	"Zone 1",
	"Zone 2",
	"Zone 3",
	"Zone 4",
	"Zone 5",
	"Zone 6",
	"Buray",
	"Lipata",
	"Villa Regina",
	"Pequit",
	"Motiong",
}

// Truck delivery areas: distant barangays served by scheduled truck runs.
var truckBarangays = []string{
	"Tutubigan",
	"Bagsa",
	"Lawaan",
	"Casandig",
	"Minarog",
}

// DeliveryTypeFor derives the delivery mode from the destination barangay.
// Matching ignores case; unknown barangays default to flexible.
func DeliveryTypeFor(barangay string) DeliveryType {
	for _, b := range truckBarangays {
		if strings.EqualFold(b, barangay) {
			return DeliveryScheduled
		}
	}
	return DeliveryFlexible
}

// KnownBarangay reports whether the barangay is in a served area.
func KnownBarangay(barangay string) bool {
	for _, b := range tricycleBarangays {
		if strings.EqualFold(b, barangay) {
			return true
		}
	}
	for _, b := range truckBarangays {
		if strings.EqualFold(b, barangay) {
			return true
		}
	}
	return false
}
