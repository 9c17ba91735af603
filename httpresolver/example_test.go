package httpresolver_test

import (
	"context"
	"fmt"
	"log"
	"net/http/httptest"
	"strings"

	"github.com/erraggy/oasresolver/httpresolver"
	"github.com/erraggy/oasresolver/internal/testutil"
	"github.com/erraggy/oasresolver/loader"
	"github.com/erraggy/oasresolver/registry"
)

func ExampleBinder_Bind() {
	doc, err := loader.LoadWithOptions(loader.WithBytes([]byte(testutil.PetstoreOAS2YAML)))
	if err != nil {
		log.Fatal(err)
	}
	reg, err := registry.New(doc)
	if err != nil {
		log.Fatal(err)
	}
	binder, err := httpresolver.NewBinder(doc)
	if err != nil {
		log.Fatal(err)
	}

	op, _ := doc.Operation("/pets/{id}", "PUT")
	req := httptest.NewRequest("PUT", "/pets/7", strings.NewReader(`{"id": 7, "name": "Rex"}`))
	req.Header.Set("Content-Type", "application/json")

	raw, err := binder.Bind(req, op, map[string]string{"id": "7"})
	if err != nil {
		log.Fatal(err)
	}
	values, err := reg.ResolveOperation(context.Background(), op.Route, op.Method, raw)
	if err != nil {
		log.Fatal(err)
	}
	id, _ := values.Get("id")
	name, _ := values.Get("name")
	fmt.Printf("id=%v (%T) name=%v\n", id, id, name)
	// Output:
	// id=7 (int64) name=Rex
}
