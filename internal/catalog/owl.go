package catalog

import (
	"encoding/xml"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/listenupapp/bookrec/internal/domain"
)

const rdfNS = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

// Book property local names. The namespace is not checked so that ontologies
// published under another base IRI still load.
const (
	propTitle    = "hasTitle"
	propGenre    = "hasGenre"
	propAgeLimit = "hasAgeLimit"
	propRating   = "hasRating"
)

type rdfDocument struct {
	XMLName xml.Name
	Nodes   []rdfNode `xml:",any"`
}

type rdfNode struct {
	XMLName xml.Name
	About   string    `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# about,attr"`
	Props   []rdfProp `xml:",any"`
}

type rdfProp struct {
	XMLName  xml.Name
	Resource string `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# resource,attr"`
	Value    string `xml:",chardata"`
}

// isBook reports whether the node is typed as a Book, either by element name
// (<books:Book>) or by an rdf:type property.
func (n *rdfNode) isBook() bool {
	if n.XMLName.Local == "Book" {
		return true
	}
	for _, p := range n.Props {
		if p.XMLName.Space == rdfNS && p.XMLName.Local == "type" && domain.LocalName(p.Resource) == "Book" {
			return true
		}
	}
	return false
}

// decodeOWL reads Book individuals from an RDF/XML document.
// Books are returned in the order they are first typed as Book. Every description
// of a book subject contributes properties; the first value of a scalar property wins.
func decodeOWL(r io.Reader) ([]Record, error) {
	var doc rdfDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	if doc.XMLName.Space != rdfNS || doc.XMLName.Local != "RDF" {
		return nil, fmt.Errorf("root element is %s:%s, want rdf:RDF", doc.XMLName.Space, doc.XMLName.Local)
	}

	var records []Record
	index := make(map[string]int)
	for i := range doc.Nodes {
		node := &doc.Nodes[i]
		if _, seen := index[node.About]; seen || !node.isBook() {
			continue
		}
		index[node.About] = len(records)
		records = append(records, Record{ID: node.About, Genres: []string{}})
	}

	for i := range doc.Nodes {
		node := &doc.Nodes[i]
		pos, ok := index[node.About]
		if !ok {
			continue
		}
		if err := applyProps(&records[pos], node.Props); err != nil {
			return nil, fmt.Errorf("book %s: %w", node.About, err)
		}
	}
	return records, nil
}

func applyProps(rec *Record, props []rdfProp) error {
	for _, p := range props {
		value := strings.TrimSpace(p.Value)
		switch p.XMLName.Local {
		case propTitle:
			if rec.Title == nil {
				rec.Title = domain.Ptr(value)
			}
		case propGenre:
			id := domain.LocalName(p.Resource)
			if id == "" {
				id = value
			}
			if id != "" && !slices.Contains(rec.Genres, id) {
				rec.Genres = append(rec.Genres, id)
			}
		case propAgeLimit:
			if rec.AgeLimit != nil {
				continue
			}
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("%s %q: %w", propAgeLimit, value, err)
			}
			rec.AgeLimit = &n
		case propRating:
			if rec.Rating != nil {
				continue
			}
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("%s %q: %w", propRating, value, err)
			}
			rec.Rating = &f
		}
	}
	return nil
}
