package domain

// FieldLabelMap maps a lead field name to the localization key of its label.
// It is built once at startup and only read afterwards.
type FieldLabelMap map[string]string

// Lookup returns the label key for field. Empty keys count as absent.
func (m FieldLabelMap) Lookup(field string) (string, bool) {
	key, ok := m[field]
	if !ok || key == "" {
		return "", false
	}
	return key, true
}
