package materialize

import (
	"bytes"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// ManifestFile is the package descriptor regenerated in every project.
const ManifestFile = "package.json"

var manifestStyle = &pretty.Options{
	// zero width keeps one array element per line
	Width:    0,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: false,
}

// PatchManifest sets the name and version fields of a package.json
// document. Comments and trailing commas are tolerated; every other field
// keeps its value and position, and missing fields are appended. The result
// is indented with two spaces and ends with exactly one newline.
func PatchManifest(data []byte, name, version string) ([]byte, error) {
	doc := jsonc.ToJSON(data)
	if !gjson.ValidBytes(doc) {
		return nil, newMaterializeError(MaterializeManifestInvalid, "manifest is not valid JSON", "", nil)
	}
	if !gjson.ParseBytes(doc).IsObject() {
		return nil, newMaterializeError(MaterializeManifestInvalid, "manifest must be a JSON object", "", nil)
	}

	doc, err := sjson.SetBytes(doc, "name", name)
	if err != nil {
		return nil, newMaterializeError(MaterializeManifestInvalid, "failed to set manifest name", "", err)
	}
	doc, err = sjson.SetBytes(doc, "version", version)
	if err != nil {
		return nil, newMaterializeError(MaterializeManifestInvalid, "failed to set manifest version", "", err)
	}

	out := pretty.PrettyOptions(doc, manifestStyle)
	out = append(bytes.TrimRight(out, "\n"), '\n')
	return out, nil
}
