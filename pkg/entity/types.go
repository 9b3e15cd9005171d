package entity

// Property type tags understood by configurators and template keys.
const (
	TypeText        = "text"
	TypeTextarea    = "textarea"
	TypeInteger     = "integer"
	TypeNumber      = "number"
	TypeBoolean     = "boolean"
	TypeDateTime    = "datetime"
	TypeDate        = "date"
	TypeEmail       = "email"
	TypeURL         = "url"
	TypeID          = "id"
	TypeAssociation = "association"
	TypeImage       = "image"
	TypeFile        = "file"
	TypeArray       = "array"
	TypeSimpleArray = "simple_array"
)

// KnownTypes lists every built-in type tag.
var KnownTypes = []string{
	TypeText, TypeTextarea, TypeInteger, TypeNumber, TypeBoolean,
	TypeDateTime, TypeDate, TypeEmail, TypeURL, TypeID, TypeAssociation,
	TypeImage, TypeFile, TypeArray, TypeSimpleArray,
}
