// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package taxonomy holds the fixed registry of 23 academic disciplines and
// the discipline-to-expert-role mapping used to staff paper reviews. All
// tables are defined once at startup and reached only through pure lookup
// and render functions.
package taxonomy

import (
	"fmt"
	"strings"
)

// Definition describes one academic discipline in the fixed taxonomy.
type Definition struct {
	ID          int
	Name        string
	Keywords    []string
	Description string
}

// disciplines is the complete registry in dense id order 1..23.
var disciplines = []Definition{
	{
		ID:   1,
		Name: "Computer Science",
		Keywords: []string{
			"AI", "ML", "machine learning", "neural network", "deep learning",
			"algorithm", "software", "programming", "NLP", "computer vision",
			"data mining", "artificial intelligence", "computing", "database",
		},
		Description: "Artificial intelligence, machine learning, algorithms, software engineering",
	},
	{
		ID:   2,
		Name: "Medicine",
		Keywords: []string{
			"clinical", "diagnosis", "treatment", "patient", "medical",
			"disease", "therapy", "hospital", "physician", "healthcare",
			"surgical", "pharmaceutical", "pathology", "oncology",
		},
		Description: "Clinical research, diagnostics, therapeutics, patient care",
	},
	{
		ID:   3,
		Name: "Chemistry",
		Keywords: []string{
			"compound", "reaction", "synthesis", "molecule", "chemical",
			"catalyst", "polymer", "organic", "inorganic", "spectroscopy",
			"electrochemistry", "biochemistry", "analytical",
		},
		Description: "Chemical compounds, reactions, synthesis, molecular analysis",
	},
	{
		ID:   4,
		Name: "Biology",
		Keywords: []string{
			"gene", "cell", "evolution", "bioinformatics", "protein",
			"DNA", "RNA", "genome", "species", "organism", "molecular",
			"ecology", "genetics", "microbiology", "neuroscience",
		},
		Description: "Genetics, cellular biology, evolution, bioinformatics",
	},
	{
		ID:   5,
		Name: "Materials Science",
		Keywords: []string{
			"nanomaterial", "crystal", "alloy", "polymer", "semiconductor",
			"ceramic", "composite", "thin film", "surface", "nanoparticle",
			"graphene", "superconductor", "biomaterial",
		},
		Description: "Nanomaterials, crystals, alloys, material properties",
	},
	{
		ID:   6,
		Name: "Physics",
		Keywords: []string{
			"quantum", "particle", "thermodynamics", "mechanics", "optics",
			"electromagnetic", "relativity", "condensed matter", "nuclear",
			"astrophysics", "photon", "wave", "energy",
		},
		Description: "Quantum mechanics, particle physics, thermodynamics",
	},
	{
		ID:   7,
		Name: "Geology",
		Keywords: []string{
			"rock", "mineral", "tectonic", "sediment", "volcanic",
			"earthquake", "geochemistry", "stratigraphy", "paleontology",
			"hydrology", "geophysics", "geological",
		},
		Description: "Rocks, minerals, tectonics, geological processes",
	},
	{
		ID:   8,
		Name: "Psychology",
		Keywords: []string{
			"behavior", "cognitive", "psychological", "mental", "emotion",
			"perception", "memory", "personality", "therapy", "disorder",
			"consciousness", "developmental", "social psychology",
		},
		Description: "Behavior, cognition, mental processes, psychological research",
	},
	{
		ID:   9,
		Name: "Art",
		Keywords: []string{
			"visual art", "music", "aesthetic", "artistic", "painting",
			"sculpture", "performance", "design", "creative", "museum",
			"cultural heritage", "art history",
		},
		Description: "Visual arts, music, aesthetics, artistic expression",
	},
	{
		ID:   10,
		Name: "History",
		Keywords: []string{
			"historical", "era", "civilization", "ancient", "medieval",
			"modern history", "archaeology", "archive", "heritage",
			"historiography", "historical event", "dynasty",
		},
		Description: "Historical events, eras, civilizations, historiography",
	},
	{
		ID:   11,
		Name: "Geography",
		Keywords: []string{
			"spatial", "regional", "climate", "landscape", "urban",
			"GIS", "cartography", "territory", "migration", "population",
			"geospatial", "environmental geography",
		},
		Description: "Spatial analysis, regional studies, climate, landscapes",
	},
	{
		ID:   12,
		Name: "Sociology",
		Keywords: []string{
			"social", "culture", "institution", "community", "inequality",
			"class", "gender", "race", "ethnicity", "social structure",
			"sociological", "social change", "social behavior",
		},
		Description: "Social structures, culture, institutions, social behavior",
	},
	{
		ID:   13,
		Name: "Business",
		Keywords: []string{
			"management", "marketing", "finance", "entrepreneurship",
			"strategy", "organization", "corporate", "MBA", "leadership",
			"innovation", "business model", "supply chain",
		},
		Description: "Management, marketing, finance, business strategy",
	},
	{
		ID:   14,
		Name: "Political Science",
		Keywords: []string{
			"government", "policy", "political", "democracy", "election",
			"parliament", "legislation", "diplomacy", "international relations",
			"political party", "voting", "governance",
		},
		Description: "Government, policy, political systems, international relations",
	},
	{
		ID:   15,
		Name: "Economics",
		Keywords: []string{
			"market", "equilibrium", "financial", "monetary", "fiscal",
			"trade", "GDP", "inflation", "microeconomics", "macroeconomics",
			"econometric", "price", "demand", "supply",
		},
		Description: "Markets, economic theory, financial systems, trade",
	},
	{
		ID:   16,
		Name: "Philosophy",
		Keywords: []string{
			"ethics", "logic", "metaphysics", "epistemology", "ontology",
			"moral", "philosophical", "reasoning", "existential",
			"phenomenology", "aesthetics philosophy", "mind",
		},
		Description: "Ethics, logic, metaphysics, epistemology, philosophical reasoning",
	},
	{
		ID:   17,
		Name: "Mathematics",
		Keywords: []string{
			"theorem", "proof", "equation", "algebra", "calculus",
			"topology", "number theory", "statistics", "probability",
			"differential", "integral", "mathematical",
		},
		Description: "Theorems, proofs, equations, mathematical analysis",
	},
	{
		ID:   18,
		Name: "Engineering",
		Keywords: []string{
			"design", "system", "optimization", "mechanical", "electrical",
			"civil", "structural", "control", "robotics", "manufacturing",
			"engineering", "prototype", "simulation",
		},
		Description: "Engineering design, systems, optimization, technical implementation",
	},
	{
		ID:   19,
		Name: "Environmental Science",
		Keywords: []string{
			"ecology", "pollution", "climate change", "sustainability",
			"biodiversity", "conservation", "ecosystem", "carbon",
			"environmental impact", "renewable", "green",
		},
		Description: "Ecology, pollution, climate change, sustainability",
	},
	{
		ID:   20,
		Name: "Agricultural and Food Sciences",
		Keywords: []string{
			"crop", "food technology", "agriculture", "livestock", "soil",
			"irrigation", "harvest", "nutrition", "food safety",
			"agronomy", "horticulture", "aquaculture",
		},
		Description: "Crops, food technology, agriculture, nutrition",
	},
	{
		ID:   21,
		Name: "Education",
		Keywords: []string{
			"pedagogy", "curriculum", "learning", "teaching", "student",
			"classroom", "educational", "assessment", "literacy",
			"higher education", "school", "instruction",
		},
		Description: "Pedagogy, curriculum, learning, teaching methods",
	},
	{
		ID:   22,
		Name: "Law",
		Keywords: []string{
			"legal", "regulation", "case", "court", "statute",
			"contract", "liability", "criminal", "constitutional",
			"jurisdiction", "litigation", "judicial",
		},
		Description: "Legal systems, regulations, case law, jurisprudence",
	},
	{
		ID:   23,
		Name: "Linguistics",
		Keywords: []string{
			"language", "syntax", "semantics", "phonology", "morphology",
			"discourse", "linguistic", "grammar", "translation",
			"sociolinguistics", "pragmatics", "corpus",
		},
		Description: "Language, syntax, semantics, linguistic analysis",
	},
}

// byName indexes definitions by lowercased canonical name.
var byName = func() map[string]Definition {
	m := make(map[string]Definition, len(disciplines))
	for _, d := range disciplines {
		m[strings.ToLower(d.Name)] = d
	}
	return m
}()

// Count is the number of disciplines in the taxonomy.
const Count = 23

// ByID returns the definition for a discipline id, or false when the id
// is outside the dense range 1..Count.
func ByID(id int) (Definition, bool) {
	if id < 1 || id > len(disciplines) {
		return Definition{}, false
	}
	return disciplines[id-1], true
}

// ByName returns the definition matching a canonical name,
// case-insensitively.
func ByName(name string) (Definition, bool) {
	d, ok := byName[strings.ToLower(name)]
	return d, ok
}

// Names returns the 23 canonical discipline names in id order.
func Names() []string {
	names := make([]string, len(disciplines))
	for i, d := range disciplines {
		names[i] = d.Name
	}
	return names
}

// RenderTable formats the taxonomy as a Markdown table of id, name, and
// description rows in stable id order. This is one of the two channels
// through which the taxonomy reaches the classifier prompt, so the output
// must stay deterministic.
func RenderTable() string {
	lines := []string{
		"| ID | Discipline | Description |",
		"|----|-----------:|-------------|",
	}
	for _, d := range disciplines {
		lines = append(lines, fmt.Sprintf("| %d | %s | %s |", d.ID, d.Name, d.Description))
	}
	return strings.Join(lines, "\n")
}

// RenderKeywordDigest formats a per-discipline digest of the top five
// indicative keywords, in stable id order.
func RenderKeywordDigest() string {
	lines := make([]string, 0, len(disciplines))
	for _, d := range disciplines {
		top := d.Keywords
		if len(top) > 5 {
			top = top[:5]
		}
		lines = append(lines, fmt.Sprintf("- **ID %d (%s)**: %s", d.ID, d.Name, strings.Join(top, ", ")))
	}
	return strings.Join(lines, "\n")
}
