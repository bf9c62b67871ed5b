package normalize

import (
	"sort"
	"strings"
)

// ResolveDepartment maps a birthplace label to a département code by
// best-effort name matching. Paris arrondissements resolve to 75; everything
// else goes through the commune table. The label set is partial, so an empty
// result is expected for communes the table does not know.
func (n *Normalizer) ResolveDepartment(birthplaceLabel string) string {
	if birthplaceLabel == "" {
		return ""
	}
	name := strings.ToLower(birthplaceLabel)

	if dept, ok := n.communes[name]; ok {
		return dept
	}

	// Arrondissement labels ("18e arrondissement de Paris") and plain "Paris".
	if strings.Contains(name, "paris") {
		return "75"
	}

	// Labels like "Meaux (Seine-et-Marne)" carry the commune name inside a
	// longer string. Scan longest commune first so "clichy-sous-bois" wins
	// over "clichy", with lexicographic order as the deterministic tie-break.
	keys := make([]string, 0, len(n.communes))
	for k := range n.communes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	for _, commune := range keys {
		if strings.Contains(name, commune) {
			return n.communes[commune]
		}
	}
	return ""
}

// defaultCommuneTable maps lower-cased commune names to département codes.
// Partial on purpose: it covers the larger communes of the seven non-Paris
// départements and grows as unresolved labels show up in summaries.
var defaultCommuneTable = map[string]string{
	// Hauts-de-Seine (92)
	"boulogne-billancourt": "92",
	"nanterre":             "92",
	"colombes":             "92",
	"asnières":             "92",
	"courbevoie":           "92",
	"rueil-malmaison":      "92",
	"issy-les-moulineaux":  "92",
	"levallois-perret":     "92",
	"neuilly-sur-seine":    "92",
	"antony":               "92",
	"clichy":               "92",
	"clamart":              "92",
	"meudon":               "92",
	"montrouge":            "92",
	"suresnes":             "92",
	"gennevilliers":        "92",
	"châtillon":            "92",
	"sceaux":               "92",
	"puteaux":              "92",
	"vanves":               "92",
	"garches":              "92",
	"chaville":             "92",
	"fontenay-aux-roses":   "92",
	"le plessis-robinson":  "92",
	"bagneux":              "92",
	"châtenay-malabry":     "92",
	// Val-de-Marne (94)
	"créteil":                  "94",
	"vitry-sur-seine":          "94",
	"champigny-sur-marne":      "94",
	"saint-maur-des-fossés":    "94",
	"ivry-sur-seine":           "94",
	"maisons-alfort":           "94",
	"fontenay-sous-bois":       "94",
	"villejuif":                "94",
	"vincennes":                "94",
	"alfortville":              "94",
	"choisy-le-roi":            "94",
	"le kremlin-bicêtre":       "94",
	"nogent-sur-marne":         "94",
	"thiais":                   "94",
	"cachan":                   "94",
	"charenton-le-pont":        "94",
	"orly":                     "94",
	"villeneuve-saint-georges": "94",
	"arcueil":                  "94",
	"fresnes":                  "94",
	"sucy-en-brie":             "94",
	"joinville-le-pont":        "94",
	"saint-mandé":              "94",
	// Yvelines (78)
	"versailles":                "78",
	"sartrouville":              "78",
	"mantes-la-jolie":           "78",
	"saint-germain-en-laye":     "78",
	"poissy":                    "78",
	"conflans-sainte-honorine":  "78",
	"montigny-le-bretonneux":    "78",
	"les mureaux":               "78",
	"plaisir":                   "78",
	"trappes":                   "78",
	"houilles":                  "78",
	"chatou":                    "78",
	"le chesnay":                "78",
	"carrières-sous-poissy":     "78",
	"élancourt":                 "78",
	"rambouillet":               "78",
	// Seine-et-Marne (77)
	"meaux":              "77",
	"chelles":            "77",
	"melun":              "77",
	"pontault-combault":  "77",
	"savigny-le-temple":  "77",
	"torcy":              "77",
	"roissy-en-brie":     "77",
	"combs-la-ville":     "77",
	"villeparisis":       "77",
	"ozoir-la-ferrière":  "77",
	"dammarie-les-lys":   "77",
	"lagny-sur-marne":    "77",
	// Essonne (91)
	"évry":                      "91",
	"corbeil-essonnes":          "91",
	"massy":                     "91",
	"savigny-sur-orge":          "91",
	"sainte-geneviève-des-bois": "91",
	"athis-mons":                "91",
	"palaiseau":                 "91",
	"viry-châtillon":            "91",
	"vigneux-sur-seine":         "91",
	"grigny":                    "91",
	"brunoy":                    "91",
	"les ulis":                  "91",
	"longjumeau":                "91",
	"ris-orangis":               "91",
	// Seine-Saint-Denis (93)
	"saint-denis":           "93",
	"montreuil":             "93",
	"aubervilliers":         "93",
	"aulnay-sous-bois":      "93",
	"drancy":                "93",
	"noisy-le-grand":        "93",
	"pantin":                "93",
	"bondy":                 "93",
	"bobigny":               "93",
	"le blanc-mesnil":       "93",
	"sevran":                "93",
	"épinay-sur-seine":      "93",
	"livry-gargan":          "93",
	"clichy-sous-bois":      "93",
	"stains":                "93",
	"rosny-sous-bois":       "93",
	"villepinte":            "93",
	"la courneuve":          "93",
	"le raincy":             "93",
	"gagny":                 "93",
	"neuilly-sur-marne":     "93",
	"pierrefitte-sur-seine": "93",
	"tremblay-en-france":    "93",
	"villemomble":           "93",
	"bagnolet":              "93",
	"les lilas":             "93",
	"romainville":           "93",
	// Val-d'Oise (95)
	"argenteuil":              "95",
	"sarcelles":               "95",
	"cergy":                   "95",
	"garges-lès-gonesse":      "95",
	"goussainville":           "95",
	"franconville":            "95",
	"bezons":                  "95",
	"villiers-le-bel":         "95",
	"ermont":                  "95",
	"pontoise":                "95",
	"herblay":                 "95",
	"taverny":                 "95",
	"saint-ouen-l'aumône":     "95",
	"eaubonne":                "95",
	"montmorency":             "95",
	"enghien-les-bains":       "95",
	"deuil-la-barre":          "95",
	"cormeilles-en-parisis":   "95",
	"saint-gratien":           "95",
	"soisy-sous-montmorency":  "95",
}
