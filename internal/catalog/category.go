package catalog

import "strings"

type Category string

const (
	CategoryHair    Category = "Hair"
	CategoryBeard   Category = "Beard"
	CategoryEyebrow Category = "Eyebrow"
	CategoryOther   Category = "Other"
)

var categoryOrder = []Category{CategoryHair, CategoryBeard, CategoryEyebrow, CategoryOther}

// Checked in order, so "Haircut & Beard" is Hair.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryHair, []string{"hair", "haircut", "scissor cut", "restyling", "buzz cut"}},
	{CategoryBeard, []string{"beard", "clean shave"}},
	{CategoryEyebrow, []string{"eyebrow", "brow"}},
}

func CategoryOf(serviceName string) Category {
	name := strings.ToLower(serviceName)
	for _, ck := range categoryKeywords {
		for _, kw := range ck.keywords {
			if strings.Contains(name, kw) {
				return ck.category
			}
		}
	}
	return CategoryOther
}

type CategoryGroup struct {
	Category Category       `json:"category"`
	Services []ServiceOffer `json:"services"`
}

// Categorize buckets offers by category in display order, keeping the
// incoming order inside a bucket. Empty categories are left out.
func Categorize(offers []ServiceOffer) []CategoryGroup {
	buckets := map[Category][]ServiceOffer{}
	for _, o := range offers {
		c := CategoryOf(o.Service.Name)
		buckets[c] = append(buckets[c], o)
	}

	out := make([]CategoryGroup, 0, len(categoryOrder))
	for _, c := range categoryOrder {
		if len(buckets[c]) == 0 {
			continue
		}
		out = append(out, CategoryGroup{Category: c, Services: buckets[c]})
	}
	return out
}
