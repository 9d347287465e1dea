package users

// Fields no generic update may touch. Role changes go through the
// admin-only role endpoint; password changes through the dedicated flow.
var protectedFields = map[string]bool{
	"role":     true,
	"password": true,
	"userid":   true,
	"_id":      true,
}

// SanitizeUpdate strips privilege and identity fields from an arbitrary
// update payload so no endpoint can silently escalate or overwrite a hash.
func SanitizeUpdate(update map[string]any) map[string]any {
	sanitized := make(map[string]any, len(update))
	for k, v := range update {
		if protectedFields[k] {
			continue
		}
		sanitized[k] = v
	}
	return sanitized
}
