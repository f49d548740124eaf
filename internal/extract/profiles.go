package extract

// Canonical output names shared by the built-in profiles. The renderer treats
// FieldImageURL specially (it becomes an image element); everything else is
// caption text.
const (
	FieldImageURL    = "imageUrl"
	FieldTitle       = "title"
	FieldDescription = "description"
)

// Built-in profile names.
const (
	ProfileCatImage     = "cat-image"
	ProfileMuseumObject = "museum-object"
)

// BuiltinProfiles returns the profiles for the two demo endpoint shapes: a
// cat-image catalog returning a one-element array, and a museum collection
// catalog returning a single object.
func BuiltinProfiles() map[string]Profile {
	return map[string]Profile{
		ProfileCatImage: {
			Name: ProfileCatImage,
			Fields: []FieldSpec{
				{Out: FieldImageURL, Path: "0.url"},
				{Out: FieldTitle, Path: "0.breeds.0.name"},
				{Out: FieldDescription, Path: "0.breeds.0.description"},
			},
		},
		ProfileMuseumObject: {
			Name: ProfileMuseumObject,
			Fields: []FieldSpec{
				{Out: FieldImageURL, Path: "primaryImage"},
				{Out: FieldTitle, Path: "title"},
				{Out: FieldDescription, Path: "artistDisplayName"},
			},
		},
	}
}
