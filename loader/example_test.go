package loader_test

import (
	"fmt"
	"log"

	"github.com/erraggy/oasresolver/internal/testutil"
	"github.com/erraggy/oasresolver/loader"
)

func ExampleLoadWithOptions() {
	doc, err := loader.LoadWithOptions(
		loader.WithBytes([]byte(testutil.PetstoreOAS2YAML)),
		loader.WithSourceName("petstore.yaml"),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(doc.SourcePath, doc.Version)
	for _, op := range doc.Operations {
		fmt.Printf("%s %s %s (%d parameters)\n", op.Method, op.Route, op.ID, len(op.Parameters))
	}
	fmt.Println(doc.Definitions.Names())
	// Output:
	// petstore.yaml 2.0
	// get /pets listPets (4 parameters)
	// post /pets createPet (0 parameters)
	// put /pets/{id} updatePet (2 parameters)
	// [Pet Tag]
}
