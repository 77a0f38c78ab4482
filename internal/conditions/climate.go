package conditions

// Weather labels produced by the driver.
const (
	WeatherClear          = "Clear"
	WeatherFreezing       = "Freezing"
	WeatherCold           = "Cold"
	WeatherCool           = "Cool"
	WeatherMild           = "Mild"
	WeatherWarm           = "Warm"
	WeatherHotAndSunny    = "Hot and Sunny"
	WeatherExtremelyHot   = "Extremely Hot"
	WeatherHeavyRain      = "Heavy Rain"
	WeatherRainy          = "Rainy"
	WeatherCloudy         = "Cloudy"
	WeatherPartlyCloudy   = "Partly Cloudy"
	WeatherPartlySunny    = "Partly Sunny"
	WeatherOccasionalRain = "Occasional Rain"
	WeatherSunny          = "Sunny"
	WeatherSnowy          = "Snowy"
	WeatherWindy          = "Windy"
	WeatherFoggy          = "Foggy"
	WeatherOvercast       = "Overcast"
)

// unexpectedWeather is the overlay pool drawn from regardless of month.
var unexpectedWeather = []string{WeatherWindy, WeatherFoggy, WeatherPartlyCloudy, WeatherOvercast}

// MonthProfile is the climate normal for one calendar month.
type MonthProfile struct {
	BaseTemp      float64  `yaml:"base_temp"`
	TempRange     float64  `yaml:"temp_range"`
	BaseHumidity  float64  `yaml:"base_humidity"`
	HumidityRange float64  `yaml:"humidity_range"`
	Weather       []string `yaml:"weather"`
}

// Climate holds the twelve month profiles, January first.
type Climate [12]MonthProfile

// Month returns the profile for month m in [1, 12].
func (c *Climate) Month(m int) MonthProfile { return c[m-1] }

// MaritimeClimate returns a temperate maritime (Amsterdam-like) climate.
func MaritimeClimate() Climate {
	return Climate{
		{3, 3, 85, 10, []string{WeatherCold, WeatherRainy, WeatherCloudy, WeatherWindy}},
		{4, 4, 80, 15, []string{WeatherCold, WeatherRainy, WeatherPartlyCloudy, WeatherWindy}},
		{7, 5, 75, 15, []string{WeatherCool, WeatherRainy, WeatherPartlyCloudy, WeatherWindy}},
		{11, 6, 70, 20, []string{WeatherCool, WeatherRainy, WeatherPartlySunny, WeatherWindy}},
		{15, 7, 70, 15, []string{WeatherMild, WeatherPartlySunny, WeatherOccasionalRain, WeatherCloudy}},
		{18, 7, 70, 15, []string{WeatherWarm, WeatherSunny, WeatherOccasionalRain, WeatherPartlyCloudy}},
		{20, 8, 75, 15, []string{WeatherWarm, WeatherSunny, WeatherOccasionalRain, WeatherPartlyCloudy}},
		{20, 7, 75, 15, []string{WeatherWarm, WeatherSunny, WeatherOccasionalRain, WeatherCloudy}},
		{17, 6, 80, 15, []string{WeatherMild, WeatherPartlySunny, WeatherOccasionalRain, WeatherCloudy}},
		{13, 5, 85, 10, []string{WeatherCool, WeatherRainy, WeatherCloudy, WeatherWindy}},
		{8, 4, 85, 10, []string{WeatherCold, WeatherRainy, WeatherCloudy, WeatherWindy}},
		{4, 3, 85, 10, []string{WeatherCold, WeatherRainy, WeatherSnowy, WeatherCloudy}},
	}
}

// Season groups months in threes.
type Season uint8

const (
	Winter Season = iota
	Spring
	Summer
	Autumn
)

// SeasonOf returns the season month m belongs to.
func SeasonOf(m int) Season {
	switch m {
	case 12, 1, 2:
		return Winter
	case 3, 4, 5:
		return Spring
	case 6, 7, 8:
		return Summer
	default:
		return Autumn
	}
}

// Correction is the seasonal temperature drift applied every tick.
func (s Season) Correction() float64 {
	switch s {
	case Winter:
		return -0.5
	case Spring:
		return 0.3
	case Summer:
		return 0.5
	default:
		return -0.3
	}
}

func (s Season) String() string {
	switch s {
	case Winter:
		return "Winter"
	case Spring:
		return "Spring"
	case Summer:
		return "Summer"
	case Autumn:
		return "Autumn"
	default:
		return "Unknown"
	}
}

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthName returns the three-letter name of month m in [1, 12].
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return "???"
	}
	return monthNames[m-1]
}
