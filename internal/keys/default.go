package keys

// defaultTable spans C4..F5. Naturals sit on the home row, flats on the row
// above, close to real piano fingering.
var defaultTable = []Definition{
	{ID: "C4", Trigger: 'a', Variant: White},
	{ID: "Db4", Trigger: 'w', Variant: Black},
	{ID: "D4", Trigger: 's', Variant: White},
	{ID: "Eb4", Trigger: 'e', Variant: Black},
	{ID: "E4", Trigger: 'd', Variant: White},
	{ID: "F4", Trigger: 'f', Variant: White},
	{ID: "Gb4", Trigger: 't', Variant: Black},
	{ID: "G4", Trigger: 'g', Variant: White},
	{ID: "Ab4", Trigger: 'y', Variant: Black},
	{ID: "A4", Trigger: 'h', Variant: White},
	{ID: "Bb4", Trigger: 'u', Variant: Black},
	{ID: "B4", Trigger: 'j', Variant: White},
	{ID: "C5", Trigger: 'k', Variant: White},
	{ID: "Db5", Trigger: 'o', Variant: Black},
	{ID: "D5", Trigger: 'l', Variant: White},
	{ID: "Eb5", Trigger: 'p', Variant: Black},
	{ID: "E5", Trigger: ';', Variant: White},
	{ID: "F5", Trigger: '\'', Variant: White},
}

var defaultRegistry = MustRegistry(defaultTable...)

// Default returns the built-in key table.
func Default() *Registry {
	return defaultRegistry
}
