package sqlstore

import "hotel_booking/internal/domain"

// DemoHotels is inserted, in this order, into an empty hotels table; ids are
// assigned by the database, so the first entry becomes hotel 1.
var DemoHotels = []domain.Hotel{
	{
		Name:         "The Royal Neemrana",
		City:         "Jaipur",
		Area:         "Civil Lines",
		NightlyPrice: 5200,
		Rating:       4.5,
		Description:  "Heritage-style stay with rooftop dining, close to Hawa Mahal and City Palace.",
		ImagePath:    "jaipur.svg",
		Amenities:    []string{"Free WiFi", "Pool", "Breakfast", "Parking", "Airport Pickup"},
	},
	{
		Name:         "Marine Bay Residency",
		City:         "Mumbai",
		Area:         "Colaba",
		NightlyPrice: 6800,
		Rating:       4.3,
		Description:  "Modern sea-facing rooms near Gateway of India with easy local travel access.",
		ImagePath:    "mumbai.svg",
		Amenities:    []string{"Free WiFi", "Gym", "Breakfast", "Sea View", "24x7 Front Desk"},
	},
	{
		Name:         "Backwater Bloom Resort",
		City:         "Kochi",
		Area:         "Fort Kochi",
		NightlyPrice: 4500,
		Rating:       4.6,
		Description:  "Calm boutique property with Kerala cuisine and sunset cruise add-ons.",
		ImagePath:    "kochi.svg",
		Amenities:    []string{"Free WiFi", "Restaurant", "Spa", "Parking", "Airport Pickup"},
	},
	{
		Name:         "Himalayan Cedar Retreat",
		City:         "Manali",
		Area:         "Old Manali",
		NightlyPrice: 3900,
		Rating:       4.4,
		Description:  "Mountain-view rooms, bonfire nights, and guided adventure activities.",
		ImagePath:    "manali.svg",
		Amenities:    []string{"Free WiFi", "Breakfast", "Bonfire", "Heater", "Travel Desk"},
	},
	{
		Name:         "Coromandel Crown",
		City:         "Chennai",
		Area:         "T Nagar",
		NightlyPrice: 4100,
		Rating:       4.2,
		Description:  "Business-friendly hotel near shopping districts and metro connectivity.",
		ImagePath:    "chennai.svg",
		Amenities:    []string{"Free WiFi", "Breakfast", "Parking", "Conference Hall", "24x7 Front Desk"},
	},
	{
		Name:         "Ganga View Haveli",
		City:         "Varanasi",
		Area:         "Dashashwamedh",
		NightlyPrice: 3600,
		Rating:       4.7,
		Description:  "Riverside rooms, evening aarti views, and curated local heritage walks.",
		ImagePath:    "varanasi.svg",
		Amenities:    []string{"Free WiFi", "Breakfast", "River View", "Airport Pickup", "Travel Desk"},
	},
}
