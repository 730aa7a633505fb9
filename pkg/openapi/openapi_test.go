package openapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfill/pkg/checksum"
	"github.com/goliatone/go-formfill/pkg/synth"
)

const customerDocument = `{
  "openapi": "3.0.3",
  "info": { "title": "Clientes", "version": "1.0.0" },
  "paths": {
    "/clientes": {
      "post": {
        "operationId": "createCliente",
        "summary": "Cadastra um cliente",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": { "$ref": "#/components/schemas/Cliente" }
            }
          }
        },
        "responses": { "201": { "description": "criado" } }
      },
      "get": {
        "responses": { "200": { "description": "lista" } }
      }
    }
  },
  "components": {
    "schemas": {
      "Cliente": {
        "type": "object",
        "required": ["nome", "cpf"],
        "properties": {
          "nome": { "type": "string", "maxLength": 60 },
          "email": { "type": "string", "format": "email" },
          "cpf": { "type": "string", "maxLength": 11 },
          "idade": { "type": "integer", "minimum": 18, "maximum": 65 },
          "aceite_termos": { "type": "boolean" },
          "newsletter": { "type": "boolean" },
          "uf": { "type": "string", "enum": ["SP", "RJ"] },
          "nascimento": { "type": "string", "format": "date" },
          "criado_em": { "type": "string", "format": "date-time" },
          "tags": { "type": "array", "items": { "type": "string", "maxLength": 20 } },
          "endereco": { "$ref": "#/components/schemas/Endereco" }
        }
      },
      "Endereco": {
        "type": "object",
        "properties": {
          "cidade": { "type": "string" },
          "cep": { "type": "string" }
        }
      }
    }
  }
}`

func mustDocument(t *testing.T, raw string) Document {
	t.Helper()
	doc, err := NewDocument(nil, []byte(raw))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	return doc
}

func TestOperations(t *testing.T) {
	ops, err := Operations(context.Background(), mustDocument(t, customerDocument))
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	if diff := cmp.Diff([]string{"createCliente", "get:/clientes"}, OperationIDs(ops)); diff != "" {
		t.Fatalf("operation ids mismatch (-want +got):\n%s", diff)
	}
	create := ops["createCliente"]
	if create.Method != http.MethodPost || create.Path != "/clientes" {
		t.Fatalf("unexpected operation %#v", create)
	}
	if create.RequestBody.Type != "object" || !create.RequestBody.IsRequired("cpf") {
		t.Fatalf("expected resolved object body, got %#v", create.RequestBody)
	}
	if _, ok := create.RequestBody.Properties["endereco"].Properties["cidade"]; !ok {
		t.Fatalf("expected nested reference to resolve")
	}
}

func TestPayload(t *testing.T) {
	op, err := FindOperation(context.Background(), mustDocument(t, customerDocument), "createCliente")
	if err != nil {
		t.Fatalf("find operation: %v", err)
	}
	filler := NewFiller(WithSynthesizer(synth.New(synth.WithSeed(3))))
	raw, err := filler.Payload(op)
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	payload, ok := raw.(map[string]any)
	if !ok {
		t.Fatalf("expected object payload, got %T", raw)
	}

	if v, _ := payload["email"].(string); !regexp.MustCompile(`^[a-z]+\d+@[a-z]+\.com$`).MatchString(v) {
		t.Fatalf("expected email, got %q", v)
	}
	if v, _ := payload["cpf"].(string); !checksum.ValidTaxID(v) {
		t.Fatalf("expected valid CPF, got %q", v)
	}
	if v, ok := payload["idade"].(int64); !ok || v < 18 || v > 65 {
		t.Fatalf("expected idade in [18,65], got %#v", payload["idade"])
	}
	if payload["aceite_termos"] != true || payload["newsletter"] != false {
		t.Fatalf("unexpected booleans %v/%v", payload["aceite_termos"], payload["newsletter"])
	}
	if v := payload["uf"]; v != "SP" && v != "RJ" {
		t.Fatalf("expected enum value, got %#v", v)
	}
	if v, _ := payload["nascimento"].(string); !regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`).MatchString(v) {
		t.Fatalf("expected ISO date, got %q", v)
	}
	if v, _ := payload["criado_em"].(string); v == "" {
		t.Fatalf("expected timestamp")
	} else if _, err := time.Parse(time.RFC3339, v); err != nil {
		t.Fatalf("expected RFC3339 timestamp, got %q", v)
	}
	tags, _ := payload["tags"].([]any)
	if len(tags) != 1 {
		t.Fatalf("expected one tag, got %#v", payload["tags"])
	}
	if tag, _ := tags[0].(string); tag == "" || len([]rune(tag)) > 20 {
		t.Fatalf("expected bounded tag text, got %q", tag)
	}
	endereco, _ := payload["endereco"].(map[string]any)
	if v, _ := endereco["cidade"].(string); v == "" {
		t.Fatalf("expected nested city, got %#v", payload["endereco"])
	}
	if v, _ := endereco["cep"].(string); !regexp.MustCompile(`^\d{8}$`).MatchString(v) {
		t.Fatalf("expected postal code, got %q", v)
	}
}

func TestPayload_RequiredOnly(t *testing.T) {
	op, err := FindOperation(context.Background(), mustDocument(t, customerDocument), "createCliente")
	if err != nil {
		t.Fatalf("find operation: %v", err)
	}
	raw, err := NewFiller(WithRequiredOnly(true)).Payload(op)
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	payload := raw.(map[string]any)
	if len(payload) != 2 || payload["nome"] == nil || payload["cpf"] == nil {
		t.Fatalf("expected only required properties, got %#v", payload)
	}
}

func TestPayload_Errors(t *testing.T) {
	doc := mustDocument(t, customerDocument)
	if _, err := FindOperation(context.Background(), doc, "missing"); !errors.Is(err, ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
	op, err := FindOperation(context.Background(), doc, "get:/clientes")
	if err != nil {
		t.Fatalf("find operation: %v", err)
	}
	if _, err := NewFiller().PayloadJSON(op); !errors.Is(err, ErrNoRequestBody) {
		t.Fatalf("expected ErrNoRequestBody, got %v", err)
	}
	if _, err := Operations(context.Background(), mustDocument(t, `{"openapi":"3.0.0","info":{"title":"x","version":"1"},"paths":{}}`)); err == nil {
		t.Fatalf("expected error for document without paths")
	}
}

func TestPayload_RecursiveSchemaTerminates(t *testing.T) {
	const document = `{
  "openapi": "3.0.0",
  "info": { "title": "Cycle", "version": "1.0.0" },
  "paths": {
    "/pessoas": {
      "post": {
        "operationId": "createPessoa",
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Pessoa" } } } },
        "responses": { "201": { "description": "ok" } }
      }
    }
  },
  "components": {
    "schemas": {
      "Pessoa": {
        "type": "object",
        "properties": {
          "nome": { "type": "string" },
          "responsavel": { "$ref": "#/components/schemas/Pessoa" }
        }
      }
    }
  }
}`
	op, err := FindOperation(context.Background(), mustDocument(t, document), "createPessoa")
	if err != nil {
		t.Fatalf("find operation: %v", err)
	}
	if ref := op.RequestBody.Properties["responsavel"].Ref; ref == "" {
		t.Fatalf("expected recursive property to keep its reference")
	}
	data, err := NewFiller().PayloadJSON(op)
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	if !regexp.MustCompile(`"responsavel": null`).Match(data) {
		t.Fatalf("expected recursive property rendered as null, got %s", data)
	}
}

func TestDetect(t *testing.T) {
	if !Detect([]byte(customerDocument)) {
		t.Fatalf("expected JSON document detected")
	}
	if !Detect([]byte("openapi: 3.0.0\ninfo: {}\n")) {
		t.Fatalf("expected YAML document detected")
	}
	if Detect([]byte(`{"type":"object"}`)) || Detect(nil) {
		t.Fatalf("expected plain JSON rejected")
	}
}

func TestLoader(t *testing.T) {
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "api.json")
	if err := os.WriteFile(path, []byte(customerDocument), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	doc, err := NewLoader().Load(ctx, SourceFromFile(path))
	if err != nil || doc.Location() != path {
		t.Fatalf("file load: %v (%s)", err, doc.Location())
	}

	fsys := fstest.MapFS{"specs/api.json": {Data: []byte(customerDocument)}}
	if _, err := NewLoader(WithFileSystem(fsys)).Load(ctx, SourceFromFS("specs/api.json")); err != nil {
		t.Fatalf("fs load: %v", err)
	}
	if _, err := NewLoader().Load(ctx, SourceFromFS("specs/api.json")); err == nil {
		t.Fatalf("expected error without filesystem")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(customerDocument))
	}))
	defer srv.Close()

	src, err := ParseSource(srv.URL + "/api.json")
	if err != nil || src.Kind() != SourceKindURL {
		t.Fatalf("expected url source, got %v (%v)", src, err)
	}
	if _, err := NewLoader().Load(ctx, src); err == nil {
		t.Fatalf("expected error with http disabled")
	}
	loader := NewLoader(WithHTTPClient(srv.Client()), WithRequestTimeout(time.Second))
	if _, err := loader.Load(ctx, src); err != nil {
		t.Fatalf("url load: %v", err)
	}
	missing, _ := SourceFromURL(srv.URL + "/missing.json")
	if _, err := loader.Load(ctx, missing); err == nil {
		t.Fatalf("expected error for 404")
	}
}
