package prediction

import (
	"strings"

	"github.com/turtacn/molsketch/pkg/errors"
)

// Example is a well-known molecule offered as a starting point.
type Example struct {
	Name     string `json:"name"`
	SMILES   string `json:"smiles"`
	Category string `json:"category"`
}

var examples = []Example{
	{Name: "Ethanol", SMILES: "CCO", Category: "Simple"},
	{Name: "Caffeine", SMILES: "CN1C=NC2=C1C(=O)N(C(=O)N2C)C", Category: "Alkaloid"},
	{Name: "Aspirin", SMILES: "CC(=O)OC1=CC=CC=C1C(=O)O", Category: "Drug"},
	{Name: "Ibuprofen", SMILES: "CC(C)CC1=CC=C(C=C1)C(C)C(=O)O", Category: "Drug"},
	{Name: "Celecoxib", SMILES: "CC1=CC=C(C=C1)C2=CC(=NN2C3=CC=C(C=C3)S(=O)(=O)N)C(F)(F)F", Category: "Drug"},
	{Name: "Benzene", SMILES: "C1=CC=CC=C1", Category: "Aromatic"},
	{Name: "Glucose", SMILES: "C([C@@H]1[C@H]([C@@H]([C@H]([C@H](O1)O)O)O)O)O", Category: "Sugar"},
	{Name: "Cholesterol", SMILES: "CC(C)CCCC(C)C1CCC2C1(CCC3C2CC=C4C3(CCC(C4)O)C)C", Category: "Steroid"},
	{Name: "Morphine", SMILES: "CN1CC[C@]23C4C1CC5=C2C(=C(C=C5)O)O[C@H]3[C@H](C=C4)O", Category: "Alkaloid"},
}

// Examples returns the example catalog.
func Examples() []Example {
	out := make([]Example, len(examples))
	copy(out, examples)
	return out
}

// LookupExample finds an example by name, ignoring case.
func LookupExample(name string) (Example, error) {
	for _, ex := range examples {
		if strings.EqualFold(ex.Name, strings.TrimSpace(name)) {
			return ex, nil
		}
	}
	return Example{}, errors.New(errors.ErrCodePredictionUnknownExample, "unknown example molecule").
		WithDetail("name=" + name)
}

//Personal.AI order the ending
