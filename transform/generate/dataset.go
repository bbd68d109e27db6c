package generate

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/pstuifzand/go-textutils/transform/jsonfmt"
	"github.com/pstuifzand/go-textutils/transform/operr"
)

const datasetOp = "data-set-generator"

// DatasetFormat selects the output of Dataset
type DatasetFormat string

const (
	DatasetJSON DatasetFormat = "json"
	DatasetCSV  DatasetFormat = "csv"
	DatasetSQL  DatasetFormat = "sql"
)

// DatasetOptions configures Dataset. Schema is a comma separated list of
// name:type fields where type is one of string, number, email, name or uuid.
type DatasetOptions struct {
	Schema string
	Count  int
	Format DatasetFormat
	Table  string
}

// DefaultDatasetOptions is ten people as JSON
func DefaultDatasetOptions() DatasetOptions {
	return DatasetOptions{Schema: "name:name, email:email, age:number", Count: 10, Format: DatasetJSON, Table: "my_table"}
}

type field struct {
	name, kind string
}

var (
	firstNames = []string{"Ada", "Alan", "Anna", "Ben", "Carla", "Dev", "Elif", "Femi", "Grace", "Hugo",
		"Ines", "Jon", "Kira", "Liam", "Maya", "Nils", "Olga", "Pablo", "Quinn", "Rosa"}
	lastNames = []string{"Adler", "Berg", "Costa", "Dahl", "Evans", "Fischer", "Garcia", "Hart", "Ito", "Jansen",
		"Kowalski", "Lund", "Moreau", "Novak", "Okafor", "Park", "Rossi", "Silva", "Tanaka", "Weber"}
	mailDomains = []string{"example.com", "example.org", "example.net"}
)

func parseSchema(schema string) ([]field, error) {
	var fields []field
	for _, part := range strings.Split(schema, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, kind, _ := strings.Cut(part, ":")
		name, kind = strings.TrimSpace(name), strings.TrimSpace(kind)
		switch kind {
		case "string", "number", "email", "name", "uuid":
		default:
			return nil, operr.Config(datasetOp, "Field %q has unknown type %q. Use string, number, email, name or uuid.", name, kind)
		}
		if name == "" {
			return nil, operr.Config(datasetOp, "Field %q has no name.", part)
		}
		fields = append(fields, field{name: name, kind: kind})
	}
	if len(fields) == 0 {
		return nil, operr.Config(datasetOp, "The schema has no fields.")
	}
	return fields, nil
}

// Dataset generates random records following a schema
func (g *Generator) Dataset(opts DatasetOptions) (string, error) {
	fields, err := parseSchema(opts.Schema)
	if err != nil {
		return "", err
	}
	if err := checkCount(datasetOp, opts.Count); err != nil {
		return "", err
	}

	records := make([][]*jsonfmt.Value, opts.Count)
	for i := range records {
		records[i] = make([]*jsonfmt.Value, len(fields))
		for j, f := range fields {
			v, err := g.fieldValue(f.kind)
			if err != nil {
				return "", err
			}
			records[i][j] = v
		}
	}

	switch opts.Format {
	case DatasetJSON, "":
		arr := &jsonfmt.Value{Kind: jsonfmt.Array}
		for _, rec := range records {
			obj := &jsonfmt.Value{Kind: jsonfmt.Object}
			for j, f := range fields {
				obj.Members = append(obj.Members, jsonfmt.Member{Key: f.name, Value: rec[j]})
			}
			arr.Items = append(arr.Items, obj)
		}
		return jsonfmt.Marshal(arr, 2), nil
	case DatasetCSV:
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		header := make([]string, len(fields))
		for j, f := range fields {
			header[j] = f.name
		}
		w.Write(header)
		for _, rec := range records {
			row := make([]string, len(rec))
			for j, v := range rec {
				row[j] = v.Text
			}
			w.Write(row)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return "", operr.Wrap(operr.UnsupportedOperation, datasetOp, err.Error(), err)
		}
		return strings.TrimSuffix(buf.String(), "\n"), nil
	case DatasetSQL:
		table := opts.Table
		if table == "" {
			table = "my_table"
		}
		names := make([]string, len(fields))
		for j, f := range fields {
			names[j] = f.name
		}
		rows := make([]string, len(records))
		for i, rec := range records {
			vals := make([]string, len(rec))
			for j, v := range rec {
				vals[j] = "'" + strings.ReplaceAll(v.Text, "'", "''") + "'"
			}
			rows[i] = "(" + strings.Join(vals, ", ") + ")"
		}
		return "INSERT INTO " + table + " (" + strings.Join(names, ", ") + ") VALUES\n" + strings.Join(rows, ",\n") + ";", nil
	}
	return "", operr.Config(datasetOp, "Unknown format %q. Use json, csv or sql.", opts.Format)
}

func (g *Generator) pick(list []string) (string, error) {
	k, err := g.intn(datasetOp, len(list))
	if err != nil {
		return "", err
	}
	return list[k], nil
}

func (g *Generator) fieldValue(kind string) (*jsonfmt.Value, error) {
	str := func(s string) *jsonfmt.Value { return &jsonfmt.Value{Kind: jsonfmt.String, Text: s} }
	switch kind {
	case "number":
		n, err := g.intn(datasetOp, 1<<31)
		if err != nil {
			return nil, err
		}
		return &jsonfmt.Value{Kind: jsonfmt.Number, Text: strconv.Itoa(n)}, nil
	case "uuid":
		id, err := uuid.NewRandomFromReader(g.source())
		if err != nil {
			return nil, operr.Wrap(operr.UnsupportedOperation, datasetOp, "Random source failed: "+err.Error(), err)
		}
		return str(id.String()), nil
	case "string":
		w, err := g.pick(wordList)
		return str(w), err
	}

	first, err := g.pick(firstNames)
	if err != nil {
		return nil, err
	}
	last, err := g.pick(lastNames)
	if err != nil {
		return nil, err
	}
	if kind == "name" {
		return str(first + " " + last), nil
	}
	domain, err := g.pick(mailDomains)
	if err != nil {
		return nil, err
	}
	return str(strings.ToLower(first+"."+last) + "@" + domain), nil
}
