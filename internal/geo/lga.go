// Package geo provides Lagos location data and static distance resolution.
package geo

// Zone classifies an LGA by its broad position in the Lagos metro area.
type Zone string

const (
	// ZoneMainland covers the densely connected mainland LGAs.
	ZoneMainland Zone = "mainland"
	// ZoneIsland covers Lagos Island, Victoria Island and the Lekki corridor.
	ZoneIsland Zone = "island"
	// ZoneOutskirt covers the outlying LGAs with long approach roads.
	ZoneOutskirt Zone = "outskirt"
)

// Point represents a geographic coordinate.
type Point struct {
	Lat float64
	Lon float64
}

// LGA is a Local Government Area, the location granularity used for
// pickup and dropoff stops.
type LGA struct {
	Name   string
	Zone   Zone
	Centre Point
}

// LagosCentre is the fallback coordinate when an LGA is unknown.
var LagosCentre = Point{Lat: 6.5244, Lon: 3.3792}

// LagosLGAs lists the supported pickup/dropoff areas. The list includes a
// few non-administrative areas (Victoria Island, Lekki) that customers use
// as destinations in practice.
var LagosLGAs = []LGA{
	// Mainland
	{Name: "Agege", Zone: ZoneMainland, Centre: Point{Lat: 6.6152, Lon: 3.3244}},
	{Name: "Ajeromi-Ifelodun", Zone: ZoneMainland, Centre: Point{Lat: 6.4667, Lon: 3.3167}},
	{Name: "Alimosho", Zone: ZoneMainland, Centre: Point{Lat: 6.5833, Lon: 3.2500}},
	{Name: "Amuwo-Odofin", Zone: ZoneMainland, Centre: Point{Lat: 6.4667, Lon: 3.3167}},
	{Name: "Apapa", Zone: ZoneMainland, Centre: Point{Lat: 6.4474, Lon: 3.3619}},
	{Name: "Ifako-Ijaiye", Zone: ZoneMainland, Centre: Point{Lat: 6.6667, Lon: 3.2667}},
	{Name: "Ikeja", Zone: ZoneMainland, Centre: Point{Lat: 6.5954, Lon: 3.3364}},
	{Name: "Kosofe", Zone: ZoneMainland, Centre: Point{Lat: 6.4667, Lon: 3.3833}},
	{Name: "Mushin", Zone: ZoneMainland, Centre: Point{Lat: 6.5244, Lon: 3.3439}},
	{Name: "Oshodi-Isolo", Zone: ZoneMainland, Centre: Point{Lat: 6.5244, Lon: 3.3278}},
	{Name: "Shomolu", Zone: ZoneMainland, Centre: Point{Lat: 6.5392, Lon: 3.3844}},
	{Name: "Surulere", Zone: ZoneMainland, Centre: Point{Lat: 6.4969, Lon: 3.3481}},
	{Name: "Lagos Mainland", Zone: ZoneMainland, Centre: Point{Lat: 6.5027, Lon: 3.3778}},

	// Island
	{Name: "Eti-Osa", Zone: ZoneIsland, Centre: Point{Lat: 6.4281, Lon: 3.6588}},
	{Name: "Lagos Island", Zone: ZoneIsland, Centre: Point{Lat: 6.4541, Lon: 3.3947}},
	{Name: "Victoria Island", Zone: ZoneIsland, Centre: Point{Lat: 6.4281, Lon: 3.4219}},
	{Name: "Lekki", Zone: ZoneIsland, Centre: Point{Lat: 6.4474, Lon: 3.4783}},

	// Outskirt
	{Name: "Badagry", Zone: ZoneOutskirt, Centre: Point{Lat: 6.4319, Lon: 2.8876}},
	{Name: "Epe", Zone: ZoneOutskirt, Centre: Point{Lat: 6.5833, Lon: 3.9833}},
	{Name: "Ibeju-Lekki", Zone: ZoneOutskirt, Centre: Point{Lat: 6.4281, Lon: 3.6588}},
	{Name: "Ikorodu", Zone: ZoneOutskirt, Centre: Point{Lat: 6.6194, Lon: 3.5106}},
}

var lgasByName = func() map[string]LGA {
	m := make(map[string]LGA, len(LagosLGAs))
	for _, l := range LagosLGAs {
		m[l.Name] = l
	}
	return m
}()

// Lookup returns the LGA with the given name.
func Lookup(name string) (LGA, bool) {
	l, ok := lgasByName[name]
	return l, ok
}

// Centre returns the centre coordinate for an LGA, falling back to the
// Lagos city centre for unknown names.
func Centre(name string) Point {
	if l, ok := lgasByName[name]; ok {
		return l.Centre
	}
	return LagosCentre
}
