package domain

// MapCenter - центр карты по умолчанию (географический центр Индии)
var MapCenter = Point{Lat: 20.5937, Lon: 78.9629}

// MapZoom - масштаб карты по умолчанию
const MapZoom = 5

// cityCoordinates - фиксированная таблица координат городов датасета.
// Города, которых нет в таблице, не попадают на карту.
var cityCoordinates = map[string]Point{
	"Mumbai":             {Lat: 19.0760, Lon: 72.8777},
	"Delhi":              {Lat: 28.7041, Lon: 77.1025},
	"Bengaluru":          {Lat: 12.9716, Lon: 77.5946},
	"Chennai":            {Lat: 13.0827, Lon: 80.2707},
	"Kolkata":            {Lat: 22.5726, Lon: 88.3639},
	"Hyderabad":          {Lat: 17.3850, Lon: 78.4867},
	"Pune":               {Lat: 18.5204, Lon: 73.8567},
	"Ahmedabad":          {Lat: 23.0225, Lon: 72.5714},
	"Jaipur":             {Lat: 26.9124, Lon: 75.7873},
	"Lucknow":            {Lat: 26.8467, Lon: 80.9462},
	"Surat":              {Lat: 21.1702, Lon: 72.8311},
	"Kanpur":             {Lat: 26.4499, Lon: 80.3319},
	"Nagpur":             {Lat: 21.1458, Lon: 79.0882},
	"Patna":              {Lat: 25.5941, Lon: 85.1376},
	"Bhopal":             {Lat: 23.2599, Lon: 77.4126},
	"Thiruvananthapuram": {Lat: 8.5241, Lon: 76.9366},
	"Indore":             {Lat: 22.7196, Lon: 75.8577},
	"Vadodara":           {Lat: 22.3072, Lon: 73.1812},
	"Guwahati":           {Lat: 26.1445, Lon: 91.7362},
	"Coimbatore":         {Lat: 11.0168, Lon: 76.9558},
	"Ranchi":             {Lat: 23.3441, Lon: 85.3096},
	"Amritsar":           {Lat: 31.6340, Lon: 74.8723},
	"Jodhpur":            {Lat: 26.2389, Lon: 73.0243},
	"Varanasi":           {Lat: 25.3176, Lon: 82.9739},
	"Ludhiana":           {Lat: 30.9010, Lon: 75.8573},
	"Agra":               {Lat: 27.1767, Lon: 78.0081},
	"Meerut":             {Lat: 28.9845, Lon: 77.7064},
	"Nashik":             {Lat: 20.0059, Lon: 73.7910},
	"Rajkot":             {Lat: 22.3039, Lon: 70.8022},
	"Madurai":            {Lat: 9.9252, Lon: 78.1198},
	"Jabalpur":           {Lat: 23.1815, Lon: 79.9864},
	"Allahabad":          {Lat: 25.4358, Lon: 81.8463},
	"Visakhapatnam":      {Lat: 17.6868, Lon: 83.2185},
	"Gwalior":            {Lat: 26.2183, Lon: 78.1828},
}

// LookupCity возвращает координаты города из фиксированной таблицы
func LookupCity(name string) (Point, bool) {
	p, ok := cityCoordinates[name]
	return p, ok
}
