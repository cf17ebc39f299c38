package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-schemaform/internal/loader"
	"github.com/goliatone/go-schemaform/pkg/form"
	"github.com/goliatone/go-schemaform/pkg/openapi"
	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/validation"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	openAPI := flag.Bool("openapi", false, "treat inputs as OpenAPI documents and lint every request body")
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-openapi] paths...\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nReport schemas that cannot be compiled into forms.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	files := loader.New(schema.NewLoaderOptions())
	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(ctx, files, path, *openAPI)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func lintFile(ctx context.Context, files *loader.Loader, path string, openAPI bool) ([]violation, error) {
	src := schema.SourceFromFile(path)
	if !openAPI {
		node, err := files.LoadNode(ctx, src)
		if err != nil {
			return nil, err
		}
		return lintSchema(path, "#", node), nil
	}

	doc, err := files.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	operations, err := openapi.Operations(ctx, doc.Raw(), openapi.Options{})
	if err != nil {
		return nil, err
	}
	var result []violation
	for id, op := range operations {
		if op.Schema == nil {
			continue
		}
		result = append(result, lintSchema(path, "operation "+id, op.Schema)...)
	}
	return result, nil
}

func lintSchema(file, location string, node *schema.Node) []violation {
	_, err := form.Compile(node)
	if err == nil {
		return nil
	}

	var invalid *validation.SchemaInvalidError
	var unsupported *form.UnsupportedKindError
	switch {
	case errors.As(err, &invalid) && len(invalid.Issues) > 0:
		result := make([]violation, 0, len(invalid.Issues))
		for _, issue := range invalid.Issues {
			result = append(result, violation{file: file, location: joinLocation(location, invalid.Path), message: issue.String()})
		}
		return result
	case errors.As(err, &unsupported):
		return []violation{{file: file, location: joinLocation(location, unsupported.InputName), message: unsupported.Error()}}
	default:
		return []violation{{file: file, location: location, message: err.Error()}}
	}
}

func joinLocation(base, path string) string {
	if path == "" {
		return base
	}
	return base + " " + path
}
