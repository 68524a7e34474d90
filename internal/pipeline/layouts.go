package pipeline

// LayoutProfile names one of the three fixed design personalities rendered
// per attempt. Each directive restates the structural lock so no variant can
// drift from the shared architectural shell.
type LayoutProfile struct {
	Name      string
	Directive string
}

var layoutProfiles = [3]LayoutProfile{
	{
		Name:      "Organic Zen",
		Directive: "Visually distinct Japandi/Minimalist concept. Low-profile organic furniture, neutral earthy palette, open circular flow, maximum negative space. Perimeter-based focal points. STRUCTURAL SHELL 100% LOCKED.",
	},
	{
		Name:      "Boutique Maximalist",
		Directive: "Visually distinct Artistic/Bohemian concept. Dense furniture types, rich patterns, bold color palette, centralized focal point, complex spatial usage. Compartmentalized zoning. STRUCTURAL SHELL 100% LOCKED.",
	},
	{
		Name:      "Industrial Core",
		Directive: "Visually distinct Modern Industrial concept. Raw materials, bold metal/wood furniture, asymmetrical layout logic, functional workspace zoning. Strong vertical emphasis. STRUCTURAL SHELL 100% LOCKED.",
	},
}

// Layouts returns the fixed ordered list of layout profiles.
func Layouts() [3]LayoutProfile {
	return layoutProfiles
}

// composeInstruction joins the shared base instruction with one profile's
// directive; this exact text is what image synthesis receives.
func composeInstruction(base string, profile LayoutProfile) string {
	return base + ". Layout Generation Rules: " + profile.Directive
}
