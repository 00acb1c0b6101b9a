package domain

// Enum fields on PreferenceRecord are string-typed with the empty string as
// the explicit "unset" variant. Consumers must treat unset as "no constraint",
// never as a mismatch.

type TravelStyle string

const (
	StyleUnset   TravelStyle = ""
	StyleBudget  TravelStyle = "budget"
	StyleComfort TravelStyle = "comfort"
	StyleLuxury  TravelStyle = "luxury"
)

type Pacing string

const (
	PacingUnset    Pacing = ""
	PacingRelaxed  Pacing = "relaxed"
	PacingModerate Pacing = "moderate"
	PacingPacked   Pacing = "packed"
)

type Accommodation string

const (
	AccommodationUnset  Accommodation = ""
	AccommodationHostel Accommodation = "hostel"
	AccommodationHotel  Accommodation = "hotel"
	AccommodationResort Accommodation = "resort"
	AccommodationAirbnb Accommodation = "airbnb"
	AccommodationAny    Accommodation = "any"
)

type ActivityType string

const (
	ActivityAdventure  ActivityType = "adventure"
	ActivityCulture    ActivityType = "culture"
	ActivityNature     ActivityType = "nature"
	ActivityFood       ActivityType = "food"
	ActivityRelaxation ActivityType = "relaxation"
	ActivityNightlife  ActivityType = "nightlife"
	ActivityShopping   ActivityType = "shopping"
)

// Season is a Malaysian travel season, named after the holiday window rather
// than the weather.
type Season string

const (
	SeasonRaya          Season = "raya"
	SeasonCNY           Season = "cny"
	SeasonDeepavali     Season = "deepavali"
	SeasonChristmas     Season = "christmas"
	SeasonSchoolHoliday Season = "school-holidays"
)

type WakeUpTime string

const (
	WakeUpUnset  WakeUpTime = ""
	WakeUpEarly  WakeUpTime = "early"
	WakeUpNormal WakeUpTime = "normal"
	WakeUpLate   WakeUpTime = "late"
)

type CrowdTolerance string

const (
	CrowdUnset        CrowdTolerance = ""
	CrowdAvoid        CrowdTolerance = "avoid"
	CrowdSome         CrowdTolerance = "some"
	CrowdNoPreference CrowdTolerance = "no-preference"
)

// ValidActivityTypes is the canonical set of accepted activity type strings.
var ValidActivityTypes = map[ActivityType]bool{
	ActivityAdventure: true, ActivityCulture: true, ActivityNature: true,
	ActivityFood: true, ActivityRelaxation: true, ActivityNightlife: true,
	ActivityShopping: true,
}

// ValidSeasons is the canonical set of accepted season strings.
var ValidSeasons = map[Season]bool{
	SeasonRaya: true, SeasonCNY: true, SeasonDeepavali: true,
	SeasonChristmas: true, SeasonSchoolHoliday: true,
}
