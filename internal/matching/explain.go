package matching

import "fmt"

// Quality is a qualitative band for a match percentage, with opaque color
// and icon tokens consumed by the UI.
type Quality struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// QualityFor maps a match percentage onto its qualitative band.
func QualityFor(percentage int) Quality {
	switch {
	case percentage >= 80:
		return Quality{Label: "Excellent Match", Color: "green", Icon: "star"}
	case percentage >= 65:
		return Quality{Label: "Great Match", Color: "teal", Icon: "thumbs-up"}
	case percentage >= 50:
		return Quality{Label: "Good Match", Color: "amber", Icon: "check"}
	default:
		return Quality{Label: "Fair Match", Color: "grey", Icon: "dot"}
	}
}

// FormatDistance renders a distance for display: meters under one kilometer,
// kilometers to one decimal otherwise.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%.0fm", km*1000)
	}
	return fmt.Sprintf("%.1fkm", km)
}

// FormatTimeDiff renders a departure-time gap for display. A negative value
// is the unknown sentinel.
func FormatTimeDiff(minutes int) string {
	if minutes < 0 {
		return "unknown"
	}
	if minutes < 60 {
		return fmt.Sprintf("%dmin", minutes)
	}
	hours := minutes / 60
	rem := minutes % 60
	if rem == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dmin", hours, rem)
}

// Reasons emits ordered human-readable strings describing why a match is
// good. Each band appends at most one string; the tighter distance band wins.
func Reasons(s Score) []string {
	var reasons []string

	switch {
	case s.PickupDistanceKm <= 1:
		reasons = append(reasons, fmt.Sprintf("Pickup is very close (%s away)", FormatDistance(s.PickupDistanceKm)))
	case s.PickupDistanceKm <= 3:
		reasons = append(reasons, fmt.Sprintf("Pickup is near (%s away)", FormatDistance(s.PickupDistanceKm)))
	}

	switch {
	case s.DropoffDistanceKm <= 1:
		reasons = append(reasons, fmt.Sprintf("Dropoff is very close (%s away)", FormatDistance(s.DropoffDistanceKm)))
	case s.DropoffDistanceKm <= 3:
		reasons = append(reasons, fmt.Sprintf("Dropoff is near (%s away)", FormatDistance(s.DropoffDistanceKm)))
	}

	if s.TimeDiffMin != TimeDiffUnknown {
		switch {
		case s.TimeDiffMin <= 15:
			reasons = append(reasons, "Departure time is a perfect fit")
		case s.TimeDiffMin <= 30:
			reasons = append(reasons, fmt.Sprintf("Departure time is a good fit (%s apart)", FormatTimeDiff(s.TimeDiffMin)))
		}
	}

	if s.Rating >= 12 {
		reasons = append(reasons, "Highly rated driver")
	}
	if s.Price >= 12 {
		reasons = append(reasons, "Well priced")
	}

	return reasons
}
