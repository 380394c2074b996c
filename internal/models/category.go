package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	CustomCategoryID      = "custom"
	UncategorizedName     = "Uncategorized"
	OtherCategoryName     = "Other"
	fallbackCategoryColor = "#8E8E93"
)

// CategoryIcon identifies the glyph a category is rendered with.
type CategoryIcon string

const (
	IconCoffee         CategoryIcon = "Coffee"
	IconShoppingBag    CategoryIcon = "ShoppingBag"
	IconShoppingCart   CategoryIcon = "ShoppingCart"
	IconPill           CategoryIcon = "Pill"
	IconUtensils       CategoryIcon = "Utensils"
	IconCar            CategoryIcon = "Car"
	IconPercent        CategoryIcon = "Percent"
	IconCreditCard     CategoryIcon = "CreditCard"
	IconZap            CategoryIcon = "Zap"
	IconPlane          CategoryIcon = "Plane"
	IconShield         CategoryIcon = "Shield"
	IconPlus           CategoryIcon = "Plus"
	IconMoreHorizontal CategoryIcon = "MoreHorizontal"
	IconCircleDashed   CategoryIcon = "CircleDashed"

	FallbackIcon = IconMoreHorizontal
)

// iconSymbols is the closed set of icons a category may carry.
var iconSymbols = map[CategoryIcon]string{
	IconCoffee:         "☕",
	IconShoppingBag:    "🛍",
	IconShoppingCart:   "🛒",
	IconPill:           "💊",
	IconUtensils:       "🍴",
	IconCar:            "🚗",
	IconPercent:        "%",
	IconCreditCard:     "💳",
	IconZap:            "⚡",
	IconPlane:          "✈",
	IconShield:         "🛡",
	IconPlus:           "+",
	IconMoreHorizontal: "…",
	IconCircleDashed:   "◌",
}

// AllCategoryIcons returns the icon catalogue in a stable order.
func AllCategoryIcons() []CategoryIcon {
	return []CategoryIcon{
		IconCoffee,
		IconShoppingBag,
		IconShoppingCart,
		IconPill,
		IconUtensils,
		IconCar,
		IconPercent,
		IconCreditCard,
		IconZap,
		IconPlane,
		IconShield,
		IconPlus,
		IconMoreHorizontal,
		IconCircleDashed,
	}
}

// IsValidCategoryIcon checks if an icon identifier is in the catalogue
func IsValidCategoryIcon(icon string) bool {
	_, ok := iconSymbols[CategoryIcon(icon)]
	return ok
}

// Symbol returns the renderable glyph, or the fallback glyph for unknown identifiers.
func (i CategoryIcon) Symbol() string {
	if symbol, ok := iconSymbols[i]; ok {
		return symbol
	}
	return iconSymbols[FallbackIcon]
}

// ExpenseCategory is the category snapshot embedded in every expense row.
type ExpenseCategory struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Color     string `json:"color,omitempty"`
	IsDefault bool   `json:"is_default"`
}

// Validate validates a category before it is written onto an expense
func (c ExpenseCategory) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrCategoryNameRequired
	}

	if len(c.Name) > maxCategoryNameLength {
		return ErrCategoryNameTooLong
	}

	if !IsValidCategoryIcon(c.Icon) {
		return fmt.Errorf("%w: %q", ErrInvalidCategoryIcon, c.Icon)
	}

	return nil
}

// DisplayName returns the name, or Uncategorized when the record carries none.
func (c ExpenseCategory) DisplayName() string {
	if c.Name == "" {
		return UncategorizedName
	}
	return c.Name
}

// DisplayIcon returns the icon, or the fallback icon when absent or unknown.
func (c ExpenseCategory) DisplayIcon() CategoryIcon {
	if !IsValidCategoryIcon(c.Icon) {
		return FallbackIcon
	}
	return CategoryIcon(c.Icon)
}

// Value implements driver.Valuer interface
func (c ExpenseCategory) Value() (driver.Value, error) {
	bytes, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	// Return string for SQLite compatibility
	return string(bytes), nil
}

// Scan implements sql.Scanner interface
func (c *ExpenseCategory) Scan(value interface{}) error {
	if value == nil {
		*c = ExpenseCategory{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ExpenseCategory", value)
	}

	if len(bytes) == 0 {
		*c = ExpenseCategory{}
		return nil
	}

	return json.Unmarshal(bytes, c)
}

var defaultCategories = []ExpenseCategory{
	{ID: "food", Name: "Food", Icon: string(IconCoffee), Color: "#FF9500", IsDefault: true},
	{ID: "groceries", Name: "Groceries", Icon: string(IconShoppingBag), Color: "#30D158", IsDefault: true},
	{ID: "shopping", Name: "Shopping", Icon: string(IconShoppingCart), Color: "#0A84FF", IsDefault: true},
	{ID: "medical", Name: "Medical", Icon: string(IconPill), Color: "#FF375F", IsDefault: true},
	{ID: "dining", Name: "Dining", Icon: string(IconUtensils), Color: "#FFD60A", IsDefault: true},
	{ID: "transport", Name: "Transport", Icon: string(IconCar), Color: "#5E5CE6", IsDefault: true},
	{ID: "loans-emi", Name: "Loans/EMI", Icon: string(IconPercent), Color: "#BF5AF2", IsDefault: true},
	{ID: "withdrawal", Name: "Withdrawal", Icon: string(IconCreditCard), Color: "#AC8E68", IsDefault: true},
	{ID: "bills", Name: "Bills", Icon: string(IconZap), Color: "#FFD60A", IsDefault: true},
	{ID: "travel", Name: "Travel", Icon: string(IconPlane), Color: "#64D2FF", IsDefault: true},
	{ID: "insurance", Name: "Insurance", Icon: string(IconShield), Color: "#32ADE6", IsDefault: true},
	{ID: "other", Name: OtherCategoryName, Icon: string(IconMoreHorizontal), Color: fallbackCategoryColor, IsDefault: true},
}

// DefaultCategories returns a copy of the built-in categories in display order.
func DefaultCategories() []ExpenseCategory {
	categories := make([]ExpenseCategory, len(defaultCategories))
	copy(categories, defaultCategories)
	return categories
}

// DefaultCategoryByID looks up a built-in category
func DefaultCategoryByID(id string) (ExpenseCategory, bool) {
	for _, category := range defaultCategories {
		if category.ID == id {
			return category, true
		}
	}
	return ExpenseCategory{}, false
}

// NewCustomCategory builds a user-named category. An empty icon selects CircleDashed.
func NewCustomCategory(name, icon, color string) (ExpenseCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ExpenseCategory{}, ErrCustomCategoryName
	}

	if icon == "" {
		icon = string(IconCircleDashed)
	}

	category := ExpenseCategory{
		ID:        CustomCategoryID,
		Name:      name,
		Icon:      icon,
		Color:     color,
		IsDefault: false,
	}

	if err := category.Validate(); err != nil {
		return ExpenseCategory{}, err
	}

	return category, nil
}
