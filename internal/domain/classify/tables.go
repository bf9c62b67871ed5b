package classify

// Country labels are the French-language labels returned by the query layer;
// the whole pipeline requests labels in a single fixed language, so the tables
// must stay in that language too.

const defaultHomeCountry = "France"

// DefaultRegions returns the built-in diaspora region table. Order is the
// tie-break order for lists spanning several regions.
func DefaultRegions() []Region {
	return []Region{
		{
			Name: "Sub-Saharan Africa",
			Countries: []string{
				"Mali", "Sénégal", "Côte d'Ivoire", "Cameroun", "Guinée",
				"République démocratique du Congo", "République du Congo",
				"Togo", "Gabon", "Bénin", "Ghana", "Nigeria", "Burkina Faso",
				"République centrafricaine", "Cap-Vert", "Guinée-Bissau",
				"Madagascar", "Maurice", "Guinée équatoriale", "Gambie",
				"Sierra Leone", "Liberia", "Niger", "Tchad", "Mauritanie",
				"Éthiopie", "Érythrée", "Somalie", "Kenya", "Ouganda",
				"Rwanda", "Burundi", "Tanzanie", "Zambie", "Zimbabwe",
				"Mozambique", "Angola", "Namibie", "Botswana", "Afrique du Sud",
				"Malawi", "Soudan", "Soudan du Sud",
			},
		},
		{
			Name:      "Maghreb",
			Countries: []string{"Algérie", "Maroc", "Tunisie", "Libye", "Égypte"},
		},
		{
			Name: "Caribbean/Overseas",
			Countries: []string{
				"Guadeloupe", "Martinique", "Guyane", "Réunion", "Mayotte",
				"Haïti", "République dominicaine", "Jamaïque", "Trinité-et-Tobago",
				"Sainte-Lucie", "Dominique", "Grenade", "Barbade", "Antigua-et-Barbuda",
			},
		},
		{
			Name:      "Comoros",
			Countries: []string{"Comores"},
		},
		{
			Name:      "Portugal",
			Countries: []string{"Portugal"},
		},
		{
			Name: "Other Europe",
			Countries: []string{
				"Espagne", "Italie", "Pologne", "Roumanie", "Serbie", "Croatie",
				"Bosnie-Herzégovine", "Albanie", "Grèce", "Turquie", "Arménie",
				"Géorgie", "Russie", "Ukraine", "Moldavie", "Belgique", "Pays-Bas",
				"Allemagne", "Suisse", "Autriche", "Hongrie", "République tchèque",
				"Slovaquie", "Bulgarie", "Macédoine du Nord", "Monténégro", "Kosovo",
			},
		},
		{
			Name: "Asia",
			Countries: []string{
				"Vietnam", "Cambodge", "Laos", "Chine", "Japon", "Corée du Sud",
				"Philippines", "Thaïlande", "Indonésie", "Malaisie", "Inde",
				"Pakistan", "Bangladesh", "Sri Lanka", "Afghanistan", "Iran", "Irak",
			},
		},
	}
}
