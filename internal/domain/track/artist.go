package track

// Artist represents a performer. Two artists are the same when name and country match.
type Artist struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// String returns a display form of the artist.
func (a Artist) String() string {
	if a.Country == "" {
		return a.Name
	}
	return a.Name + " (" + a.Country + ")"
}
