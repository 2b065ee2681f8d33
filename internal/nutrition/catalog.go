package nutrition

import (
	"fmt"
	"strings"
)

// Category groups catalog foods by the meal role they can fill.
type Category int

const (
	CategoryBreakfast Category = iota
	CategoryProtein
	CategoryCarb
	CategoryFat
	CategorySnack
)

func (c Category) String() string {
	switch c {
	case CategoryBreakfast:
		return "Breakfast"
	case CategoryProtein:
		return "Protein"
	case CategoryCarb:
		return "Carb"
	case CategoryFat:
		return "Fat"
	case CategorySnack:
		return "Snack"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "breakfast":
		return CategoryBreakfast, true
	case "protein":
		return CategoryProtein, true
	case "carb", "carbs":
		return CategoryCarb, true
	case "fat":
		return CategoryFat, true
	case "snack":
		return CategorySnack, true
	default:
		return 0, false
	}
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, ok := ParseCategory(string(b))
	if !ok {
		return fmt.Errorf("unknown food category %q", string(b))
	}
	*c = parsed
	return nil
}

// Combined reports whether a role of this category fills a whole meal on its
// own, sized by calories rather than by a single macro.
func (c Category) Combined() bool {
	switch c {
	case CategoryBreakfast, CategorySnack:
		return true
	default:
		return false
	}
}

// SizingMacro is the macro a role's portion is sized against.
// Combined roles record their protein grams as the base macro.
func (c Category) SizingMacro() Macro {
	switch c {
	case CategoryCarb:
		return MacroCarbs
	case CategoryFat:
		return MacroFat
	default:
		return MacroProtein
	}
}

type Macro int

const (
	MacroProtein Macro = iota
	MacroCarbs
	MacroFat
)

// Food is an immutable catalog entry. Macros are grams per 100 reference units.
type Food struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
	BaseUnit string   `json:"base_unit"`
	Prep     string   `json:"prep"`
	ImageURL string   `json:"img"`
}

func (f Food) Macro(m Macro) float64 {
	switch m {
	case MacroCarbs:
		return f.Carbs
	case MacroFat:
		return f.Fat
	default:
		return f.Protein
	}
}

// CaloriesPer100 is the food's energy density per 100 reference units.
func (f Food) CaloriesPer100() float64 {
	return 4*f.Protein + 4*f.Carbs + 9*f.Fat
}

var catalog = map[Category][]Food{
	CategoryBreakfast: {
		{Name: "Oatmeal with Milk", Protein: 20, Carbs: 10, Fat: 5, BaseUnit: "g (Dry Oats)", ImageURL: "https://www.daisybeet.com/wp-content/uploads/2025/02/Creamy-high-protein-oatmeal-with-milk-9.png", Prep: "Cook 50g oats with 200ml milk/water. Top with berries/cinnamon."},
		{Name: "Museli & Greek Yogurt", Protein: 20, Carbs: 25, Fat: 8, BaseUnit: "g (Yogurt/Muesli)", ImageURL: "https://ifed.sphealth.com.au/image.ashx?guid=14367526-f526-456c-8d49-4ce0c339083d", Prep: "Mix 150g Greek yogurt with 50g muesli. Quick, high-protein breakfast."},
		{Name: "Cottage Cheese Bowl", Protein: 20, Carbs: 7, Fat: 5, BaseUnit: "g (Cottage Cheese)", ImageURL: "https://www.daisybeet.com/wp-content/uploads/2025/02/Creamy-high-protein-oatmeal-with-milk-9.png", Prep: "Serve 150g cottage cheese with half a sliced apple and dash of honey."},
		{Name: "Protein Smoothie", Protein: 30, Carbs: 10, Fat: 3, BaseUnit: "g (Protein Powder)", ImageURL: "https://dymatize.imgix.net/production/blog/ChocPeppermintProteinShake_1856x1236.jpg", Prep: "Blend 1 scoop protein powder, 1 banana, 1 cup spinach, and water/ice."},
	},
	CategoryProtein: {
		{Name: "Chicken Breast", Protein: 31, Carbs: 0, Fat: 4, BaseUnit: "g (Cooked)", ImageURL: "https://easychickenrecipes.com/wp-content/uploads/2022/10/Featured-Pan-Seared-Chicken-Breasts-1-of-1.jpg", Prep: "Pan-sear/bake 120-150g chicken breast until internal temp reaches 74°C."},
		{Name: "Salmon Fillet", Protein: 25, Carbs: 0, Fat: 13, BaseUnit: "g (Cooked)", ImageURL: "https://www.wholesomeyum.com/wp-content/uploads/2023/11/wholesomeyum-Pan-Seared-Salmon-27.jpg", Prep: "Bake 100-120g salmon at 200°C for 12 mins with lemon slices and dill."},
		{Name: "Soya Chunks", Protein: 52, Carbs: 33, Fat: 0, BaseUnit: "g (Dry)", ImageURL: "https://www.myplantifulcooking.com/wp-content/uploads/2021/09/soya-chunks-dry-masala-pan.jpg", Prep: "Soak, boil, and pan-fry 50g soya chunks with spices. High protein vegetarian option."},
		{Name: "Paneer Cubes", Protein: 18, Carbs: 4, Fat: 25, BaseUnit: "g (Raw)", ImageURL: "https://res.cloudinary.com/solin-fitness/image/upload/c_scale,w_500,q_auto,f_auto/single-meal-images/ebgtpljfsrgebpjtg0xd", Prep: "Lightly pan-fry 100g paneer cubes. Mix with cooked vegetables or spinach."},
	},
	CategoryCarb: {
		{Name: "Brown Rice", Protein: 3, Carbs: 23, Fat: 1, BaseUnit: "g (Cooked)", ImageURL: "https://www.themediterraneandish.com/wp-content/uploads/2024/01/How-to-Cook-Brown-Rice-16.jpg", Prep: "Boil 2 cups of water for 1 cup rice. Simmer for 40 mins. Approx 150g cooked per serving."},
		{Name: "Sweet Potato", Protein: 2, Carbs: 20, Fat: 0, BaseUnit: "g (Cooked)", ImageURL: "https://c.ndtvimg.com/gws/ms/health-benefits-of-sweet-potatoes/assets/5.png", Prep: "Bake at 200°C for 45 mins. Serve diced or mashed. Approx 150g per medium potato."},
		{Name: "Whole Wheat Roti (2 pcs)", Protein: 10, Carbs: 25, Fat: 4, BaseUnit: "pcs", ImageURL: "https://cdn.indiaphile.info/wp-content/uploads/2022/09/stp-roti-1142.jpg", Prep: "Cook 2 rotis on a tava. Eat with subzi/protein curry."},
	},
	CategoryFat: {
		{Name: "Avocado (1/2)", Protein: 2, Carbs: 9, Fat: 15, BaseUnit: "portion", ImageURL: "https://images.immediate.co.uk/production/volatile/sites/30/2022/07/Avocado-sliced-in-half-ca9d808.jpg", Prep: "Slice half an avocado. Add salt/pepper/lime juice. Great with eggs or salad."},
		{Name: "Salad", Protein: 4, Carbs: 15, Fat: 3, BaseUnit: "g", ImageURL: "https://mallorythedietitian.com/wp-content/uploads/2025/03/cucumber-carrot-salad-in-a-glass-bowl-side-view-1.jpg", Prep: "Wash and cut carrot and cucumber. Whisk olive oil, lemon juice, salt, and pepper. Pour over vegetables and toss well."},
	},
	CategorySnack: {
		{Name: "Rice Cakes w/ Peanut Butter", Protein: 5, Carbs: 25, Fat: 10, BaseUnit: "unit", ImageURL: "https://www.bodybuildingmealplan.com/wp-content/uploads/Rice-Cake-With-Peanut-Butter-scaled.jpg", Prep: "Top 2 rice cakes with 1 tbsp (15g) peanut butter. Quick fuel."},
		{Name: "Protein Bar", Protein: 20, Carbs: 20, Fat: 10, BaseUnit: "bar", ImageURL: "https://images-cdn.ubuy.co.in/681bf0aaf71bb0524d0d25de-barebells-protein-bars-creamy-crisp-12.jpg", Prep: "Grab and go. Choose one with low added sugar."},
		{Name: "Hard-Boiled Eggs (2)", Protein: 12, Carbs: 1, Fat: 10, BaseUnit: "eggs", ImageURL: "https://www.bowlofdelicious.com/wp-content/uploads/2015/11/Easy-to-Peel-Hard-Boiled-Eggs-square.jpg", Prep: "Boil eggs for 8-10 mins. Cool and peel. Excellent portable protein."},
	},
}

func init() {
	for category, foods := range catalog {
		for i := range foods {
			foods[i].Category = category
		}
	}
}

// Foods returns a copy of the catalog entries for c.
func Foods(c Category) []Food {
	foods := catalog[c]
	out := make([]Food, len(foods))
	copy(out, foods)
	return out
}

// Categories lists the catalog categories in display order.
func Categories() []Category {
	return []Category{CategoryBreakfast, CategoryProtein, CategoryCarb, CategoryFat, CategorySnack}
}
