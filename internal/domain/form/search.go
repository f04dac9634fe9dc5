package form

import "strings"

// Search фильтрует заявки по фамилии, имени, email (без учета регистра) или CNP
func Search(forms []Form, term string) []Form {
	term = strings.TrimSpace(term)
	if term == "" {
		return forms
	}

	lower := strings.ToLower(term)
	out := make([]Form, 0, len(forms))
	for _, f := range forms {
		if strings.Contains(strings.ToLower(f.LastName), lower) ||
			strings.Contains(strings.ToLower(f.FirstName), lower) ||
			strings.Contains(strings.ToLower(f.Email), lower) ||
			strings.Contains(f.CNP, term) {
			out = append(out, f)
		}
	}
	return out
}
