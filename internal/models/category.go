package models

import "strings"

// Category labels. The list is fixed and ordered; navigation can only reach
// categories on it. CategoryAll is a sentinel meaning "no category filter".
const (
	CategoryAll          = "All"
	CategoryGraphicsCard = "Graphics Card"
	CategoryProcessor    = "Processor"
	CategoryMotherboard  = "Motherboard"
	CategoryRAM          = "RAM"
	CategorySSD          = "SSD"
	CategoryPowerSupply  = "Power Supply"
	CategoryCase         = "Case"
	CategoryCooling      = "Cooling"
	CategoryMonitor      = "Monitor"
	CategoryKeyboard     = "Keyboard"
	CategoryMouse        = "Mouse"
	CategoryHeadset      = "Headset"
	CategorySpeaker      = "Speaker"
	CategoryOther        = "Other"
)

// Categories is the complete navigable category list, in display order.
var Categories = []string{
	CategoryAll,
	CategoryGraphicsCard,
	CategoryProcessor,
	CategoryMotherboard,
	CategoryRAM,
	CategorySSD,
	CategoryPowerSupply,
	CategoryCase,
	CategoryCooling,
	CategoryMonitor,
	CategoryKeyboard,
	CategoryMouse,
	CategoryHeadset,
	CategorySpeaker,
	CategoryOther,
}

// CanonicalCategory maps a case-insensitive name onto the fixed label set.
// Returns false for names outside the list.
func CanonicalCategory(name string) (string, bool) {
	for _, c := range Categories {
		if strings.EqualFold(c, name) {
			return c, true
		}
	}
	return "", false
}
