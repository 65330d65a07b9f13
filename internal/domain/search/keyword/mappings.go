package keyword

import "github.com/kailas-cloud/plantdex/internal/domain/plant"

// Mapping binds trigger phrases to values of one filter.
type Mapping struct {
	Keywords []string
	Filter   string
	Values   []string
}

// Mappings is the trigger vocabulary. Several entries may feed the same filter.
var Mappings = []Mapping{
	// sun exposure
	{Keywords: []string{"shade", "shady", "full shade", "deep shade", "shade tolerant"}, Filter: plant.FieldSunExposure, Values: []string{"Shade"}},
	{Keywords: []string{"sun", "sunny", "full sun", "all day sun"}, Filter: plant.FieldSunExposure, Values: []string{"Sun"}},
	{Keywords: []string{"part shade", "partial shade", "partial sun", "part sun", "filtered light"}, Filter: plant.FieldSunExposure, Values: []string{"Part Shade"}},
	// soil moisture
	{Keywords: []string{"wet", "wet soil", "wet feet", "puddles", "rain garden"}, Filter: plant.FieldSoilMoisture, Values: []string{"Wet"}},
	{Keywords: []string{"dry", "dry soil", "cracks", "drought", "drought tolerant"}, Filter: plant.FieldSoilMoisture, Values: []string{"Dry"}},
	{Keywords: []string{"moist", "moist soil", "slightly moist", "damp"}, Filter: plant.FieldSoilMoisture, Values: []string{"Moist"}},
	// life cycle
	{Keywords: []string{"perennial", "perennials"}, Filter: plant.FieldLifeCycle, Values: []string{"Perennial"}},
	{Keywords: []string{"annual", "annuals"}, Filter: plant.FieldLifeCycle, Values: []string{"Annual"}},
	{Keywords: []string{"biennial", "biennials"}, Filter: plant.FieldLifeCycle, Values: []string{"Biennial"}},
	// pollinators
	{Keywords: []string{"butterfly", "butterflies"}, Filter: plant.FieldPollinator, Values: []string{"Butterflies"}},
	{Keywords: []string{"hummingbird", "hummingbirds"}, Filter: plant.FieldPollinator, Values: []string{"Hummingbirds"}},
	{Keywords: []string{"bees", "bee", "honey bees", "native bees"}, Filter: plant.FieldPollinator, Values: []string{"Native Bees", "Honey Bees"}},
	{Keywords: []string{"beetle", "beetles"}, Filter: plant.FieldPollinator, Values: []string{"Beetles"}},
	{Keywords: []string{"bombus", "bumblebee", "bumblebees", "bumble bee", "bumble bees"}, Filter: plant.FieldPollinator, Values: []string{"Bombus"}},
	{Keywords: []string{"fly", "flies"}, Filter: plant.FieldPollinator, Values: []string{"Flies"}},
	{Keywords: []string{"monarch butterfly", "monarch butterflies"}, Filter: plant.FieldPollinator, Values: []string{"Monarchs"}},
	{Keywords: []string{"monarch", "monarchs"}, Filter: plant.FieldPollinator, Values: []string{"Monarchs"}},
	{Keywords: []string{"moth", "moths"}, Filter: plant.FieldPollinator, Values: []string{"Moths"}},
	{Keywords: []string{"wasp", "wasps"}, Filter: plant.FieldPollinator, Values: []string{"Wasps"}},
	{Keywords: []string{"larval host butterfly", "larval host butterflies", "butterfly host", "butterfly hosts"}, Filter: plant.FieldPollinator, Values: []string{"Larval Host (Butterfly)"}},
	{Keywords: []string{"larval host monarch", "larval host monarchs", "monarch host", "monarch hosts", "monarch waystation"}, Filter: plant.FieldPollinator, Values: []string{"Larval Host (Monarch)"}},
	{Keywords: []string{"larval host moth", "larval host moths", "moth host", "moth hosts"}, Filter: plant.FieldPollinator, Values: []string{"Larval Host (Moth)"}},
	{Keywords: []string{"nesting bees", "nesting structure bees", "bee nesting", "bee nesting structure", "nesting and structure bees"}, Filter: plant.FieldPollinator, Values: []string{"Nesting And Structure (Bees)"}},
	// plant type
	{Keywords: []string{"tree", "trees"}, Filter: plant.FieldPlantType, Values: []string{"Tree"}},
	{Keywords: []string{"shrub", "shrubs", "bush", "bushes"}, Filter: plant.FieldPlantType, Values: []string{"Shrub"}},
	{Keywords: []string{"vine", "vines", "climbing", "trellis"}, Filter: plant.FieldPlantType, Values: []string{"Vine"}},
	{Keywords: []string{"grass", "grasses", "graminoid"}, Filter: plant.FieldPlantType, Values: []string{"Graminoid"}},
	{Keywords: []string{"herb", "herbs"}, Filter: plant.FieldPlantType, Values: []string{"Herb"}},
	// flower color
	{Keywords: []string{"yellow", "yellow flowers"}, Filter: plant.FieldFlowerColor, Values: []string{"Yellow"}},
	{Keywords: []string{"red", "red flowers"}, Filter: plant.FieldFlowerColor, Values: []string{"Red"}},
	{Keywords: []string{"purple", "purple flowers", "violet"}, Filter: plant.FieldFlowerColor, Values: []string{"Purple"}},
	{Keywords: []string{"orange", "orange flowers"}, Filter: plant.FieldFlowerColor, Values: []string{"Orange"}},
	{Keywords: []string{"pink", "pink flowers"}, Filter: plant.FieldFlowerColor, Values: []string{"Pink"}},
	{Keywords: []string{"white", "white flowers"}, Filter: plant.FieldFlowerColor, Values: []string{"White"}},
	{Keywords: []string{"blue", "blue flowers"}, Filter: plant.FieldFlowerColor, Values: []string{"Blue"}},
	// badges
	{Keywords: []string{"showy", "showy flowers"}, Filter: plant.FieldShowy, Values: []string{"Showy"}},
	{Keywords: []string{"super plant", "superplant"}, Filter: plant.FieldSuperplant, Values: []string{"Super Plant"}},
	// states
	{Keywords: []string{"alabama", "al", "al native", "alabama native"}, Filter: plant.FieldStates, Values: []string{"AL"}},
	{Keywords: []string{"alaska", "ak", "ak native", "alaska native"}, Filter: plant.FieldStates, Values: []string{"AK"}},
	{Keywords: []string{"arizona", "az", "az native", "arizona native"}, Filter: plant.FieldStates, Values: []string{"AZ"}},
	{Keywords: []string{"arkansas", "ar", "ar native", "arkansas native"}, Filter: plant.FieldStates, Values: []string{"AR"}},
	{Keywords: []string{"california", "ca", "ca native", "california native"}, Filter: plant.FieldStates, Values: []string{"CA"}},
	{Keywords: []string{"colorado", "co", "co native", "colorado native"}, Filter: plant.FieldStates, Values: []string{"CO"}},
	{Keywords: []string{"connecticut", "ct", "ct native", "connecticut native"}, Filter: plant.FieldStates, Values: []string{"CT"}},
	{Keywords: []string{"delaware", "de", "de native", "delaware native"}, Filter: plant.FieldStates, Values: []string{"DE"}},
	{Keywords: []string{"district of columbia", "dc", "dc native", "district of columbia native", "washington dc", "washington d.c."}, Filter: plant.FieldStates, Values: []string{"DC"}},
	{Keywords: []string{"florida", "fl", "fl native", "florida native"}, Filter: plant.FieldStates, Values: []string{"FL"}},
	{Keywords: []string{"georgia", "ga", "ga native", "georgia native"}, Filter: plant.FieldStates, Values: []string{"GA"}},
	{Keywords: []string{"hawaii", "hi", "hi native", "hawaii native"}, Filter: plant.FieldStates, Values: []string{"HI"}},
	{Keywords: []string{"idaho", "id", "id native", "idaho native"}, Filter: plant.FieldStates, Values: []string{"ID"}},
	{Keywords: []string{"illinois", "il", "il native", "illinois native"}, Filter: plant.FieldStates, Values: []string{"IL"}},
	{Keywords: []string{"indiana", "in", "in native", "indiana native"}, Filter: plant.FieldStates, Values: []string{"IN"}},
	{Keywords: []string{"iowa", "ia", "ia native", "iowa native"}, Filter: plant.FieldStates, Values: []string{"IA"}},
	{Keywords: []string{"kansas", "ks", "ks native", "kansas native"}, Filter: plant.FieldStates, Values: []string{"KS"}},
	{Keywords: []string{"kentucky", "ky", "ky native", "kentucky native"}, Filter: plant.FieldStates, Values: []string{"KY"}},
	{Keywords: []string{"louisiana", "la", "la native", "louisiana native"}, Filter: plant.FieldStates, Values: []string{"LA"}},
	{Keywords: []string{"maine", "me", "me native", "maine native"}, Filter: plant.FieldStates, Values: []string{"ME"}},
	{Keywords: []string{"maryland", "md", "md native", "maryland native"}, Filter: plant.FieldStates, Values: []string{"MD"}},
	{Keywords: []string{"massachusetts", "ma", "ma native", "massachusetts native"}, Filter: plant.FieldStates, Values: []string{"MA"}},
	{Keywords: []string{"michigan", "mi", "mi native", "michigan native"}, Filter: plant.FieldStates, Values: []string{"MI"}},
	{Keywords: []string{"minnesota", "mn", "mn native", "minnesota native"}, Filter: plant.FieldStates, Values: []string{"MN"}},
	{Keywords: []string{"mississippi", "ms", "ms native", "mississippi native"}, Filter: plant.FieldStates, Values: []string{"MS"}},
	{Keywords: []string{"missouri", "mo", "mo native", "missouri native"}, Filter: plant.FieldStates, Values: []string{"MO"}},
	{Keywords: []string{"montana", "mt", "mt native", "montana native"}, Filter: plant.FieldStates, Values: []string{"MT"}},
	{Keywords: []string{"nebraska", "ne", "ne native", "nebraska native"}, Filter: plant.FieldStates, Values: []string{"NE"}},
	{Keywords: []string{"nevada", "nv", "nv native", "nevada native"}, Filter: plant.FieldStates, Values: []string{"NV"}},
	{Keywords: []string{"new hampshire", "nh", "nh native", "new hampshire native"}, Filter: plant.FieldStates, Values: []string{"NH"}},
	{Keywords: []string{"new jersey", "nj", "nj native", "new jersey native"}, Filter: plant.FieldStates, Values: []string{"NJ"}},
	{Keywords: []string{"new mexico", "nm", "nm native", "new mexico native"}, Filter: plant.FieldStates, Values: []string{"NM"}},
	{Keywords: []string{"new york", "ny", "ny native", "new york native"}, Filter: plant.FieldStates, Values: []string{"NY"}},
	{Keywords: []string{"north carolina", "nc", "nc native", "north carolina native"}, Filter: plant.FieldStates, Values: []string{"NC"}},
	{Keywords: []string{"north dakota", "nd", "nd native", "north dakota native"}, Filter: plant.FieldStates, Values: []string{"ND"}},
	{Keywords: []string{"ohio", "oh", "oh native", "ohio native"}, Filter: plant.FieldStates, Values: []string{"OH"}},
	{Keywords: []string{"oklahoma", "ok", "ok native", "oklahoma native"}, Filter: plant.FieldStates, Values: []string{"OK"}},
	{Keywords: []string{"oregon", "or", "or native", "oregon native"}, Filter: plant.FieldStates, Values: []string{"OR"}},
	{Keywords: []string{"pennsylvania", "pa", "pa native", "pennsylvania native"}, Filter: plant.FieldStates, Values: []string{"PA"}},
	{Keywords: []string{"rhode island", "ri", "ri native", "rhode island native"}, Filter: plant.FieldStates, Values: []string{"RI"}},
	{Keywords: []string{"south carolina", "sc", "sc native", "south carolina native"}, Filter: plant.FieldStates, Values: []string{"SC"}},
	{Keywords: []string{"south dakota", "sd", "sd native", "south dakota native"}, Filter: plant.FieldStates, Values: []string{"SD"}},
	{Keywords: []string{"tennessee", "tn", "tn native", "tennessee native"}, Filter: plant.FieldStates, Values: []string{"TN"}},
	{Keywords: []string{"texas", "tx", "tx native", "texas native"}, Filter: plant.FieldStates, Values: []string{"TX"}},
	{Keywords: []string{"utah", "ut", "ut native", "utah native"}, Filter: plant.FieldStates, Values: []string{"UT"}},
	{Keywords: []string{"vermont", "vt", "vt native", "vermont native"}, Filter: plant.FieldStates, Values: []string{"VT"}},
	{Keywords: []string{"virginia", "va", "va native", "virginia native"}, Filter: plant.FieldStates, Values: []string{"VA"}},
	{Keywords: []string{"washington", "wa", "wa native", "washington native"}, Filter: plant.FieldStates, Values: []string{"WA"}},
	{Keywords: []string{"west virginia", "wv", "wv native", "west virginia native"}, Filter: plant.FieldStates, Values: []string{"WV"}},
	{Keywords: []string{"wisconsin", "wi", "wi native", "wisconsin native"}, Filter: plant.FieldStates, Values: []string{"WI"}},
	{Keywords: []string{"wyoming", "wy", "wy native", "wyoming native"}, Filter: plant.FieldStates, Values: []string{"WY"}},
	// availability
	{Keywords: []string{"local", "local store", "local nursery", "nearby", "near me", "in store", "brick and mortar"}, Filter: plant.FieldAvailability, Values: []string{"Local"}},
	{Keywords: []string{"online", "online store", "buy online", "order online", "shipping", "delivery", "ecommerce"}, Filter: plant.FieldAvailability, Values: []string{"Online"}},
}
