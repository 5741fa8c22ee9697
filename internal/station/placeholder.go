package station

import (
	"fmt"

	"github.com/rainwise/web-go/internal/models"
)

type placeholderCity struct {
	name      string
	state     string
	latitude  float64
	longitude float64
}

// Stand-in until the station registry is populated with real monitoring
// stations. Order matters: nearest-station ties go to the earlier entry.
var placeholderCities = []placeholderCity{
	{"Delhi", "Delhi", 28.6139, 77.2090},
	{"Mumbai", "Maharashtra", 19.0760, 72.8777},
	{"Bengaluru", "Karnataka", 12.9716, 77.5946},
	{"Chennai", "Tamil Nadu", 13.0827, 80.2707},
	{"Kolkata", "West Bengal", 22.5726, 88.3639},
	{"Hyderabad", "Telangana", 17.3850, 78.4867},
	{"Ahmedabad", "Gujarat", 23.0225, 72.5714},
	{"Pune", "Maharashtra", 18.5204, 73.8567},
	{"Jaipur", "Rajasthan", 26.9124, 75.7873},
	{"Lucknow", "Uttar Pradesh", 26.8467, 80.9462},
	{"Kanpur", "Uttar Pradesh", 26.4499, 80.3319},
	{"Nagpur", "Maharashtra", 21.1458, 79.0882},
	{"Indore", "Madhya Pradesh", 22.7196, 75.8577},
	{"Bhopal", "Madhya Pradesh", 23.2599, 77.4126},
	{"Patna", "Bihar", 25.5941, 85.1376},
	{"Vadodara", "Gujarat", 22.3072, 73.1812},
	{"Ludhiana", "Punjab", 30.9010, 75.8573},
	{"Agra", "Uttar Pradesh", 27.1767, 78.0081},
	{"Nashik", "Maharashtra", 19.9975, 73.7898},
	{"Varanasi", "Uttar Pradesh", 25.3176, 82.9739},
	{"Srinagar", "Jammu and Kashmir", 34.0837, 74.7973},
	{"Amritsar", "Punjab", 31.6340, 74.8723},
	{"Ranchi", "Jharkhand", 23.3441, 85.3096},
	{"Guwahati", "Assam", 26.1445, 91.7362},
	{"Chandigarh", "Chandigarh", 30.7333, 76.7794},
	{"Thiruvananthapuram", "Kerala", 8.5241, 76.9366},
	{"Bhubaneswar", "Odisha", 20.2961, 85.8245},
	{"Dehradun", "Uttarakhand", 30.3165, 78.0322},
	{"Raipur", "Chhattisgarh", 21.2514, 81.6296},
	{"Visakhapatnam", "Andhra Pradesh", 17.6868, 83.2185},
}

// PlaceholderStations returns a fresh copy of the placeholder station list
func PlaceholderStations() []models.Station {
	stations := make([]models.Station, len(placeholderCities))
	for i, c := range placeholderCities {
		state := c.state
		stations[i] = models.Station{
			ID:        fmt.Sprintf("st-%02d", i+1),
			Name:      c.name,
			State:     &state,
			Latitude:  c.latitude,
			Longitude: c.longitude,
			Source:    models.SourcePlaceholder,
		}
	}
	return stations
}
