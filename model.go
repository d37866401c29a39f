package entag

import (
	"encoding/gob"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// A Model bundles the per-task maxent tables used by the toolkit. Any
// component may be absent; pipeline stages that need a missing component
// are skipped.
type Model struct {
	Name string

	tagger      *Tagger
	finder      *NameFinder
	chunker     *Chunker
	categorizer *Categorizer
}

// A ModelSource installs one component into a Model.
type ModelSource func(model *Model) error

// UsingTagger installs a POS tagging table.
func UsingTagger(mm *MaxentModel, opts ...TaggerOption) ModelSource {
	return func(model *Model) error {
		model.tagger = NewTagger(mm, opts...)
		return nil
	}
}

// UsingNameFinder installs a named-entity table with the span codec
// registered under codecName.
func UsingNameFinder(mm *MaxentModel, codecName string, opts ...NameFinderOption) ModelSource {
	return func(model *Model) error {
		codec, err := CodecFor(codecName)
		if err != nil {
			return err
		}
		model.finder = NewNameFinder(mm, codec, opts...)
		return nil
	}
}

// UsingChunker installs a shallow-parse chunking table.
func UsingChunker(mm *MaxentModel, opts ...ChunkerOption) ModelSource {
	return func(model *Model) error {
		model.chunker = NewChunker(mm, opts...)
		return nil
	}
}

// UsingCategorizer installs a document categorization table.
func UsingCategorizer(mm *MaxentModel, lang Language) ModelSource {
	return func(model *Model) error {
		model.categorizer = NewCategorizer(mm, lang)
		return nil
	}
}

// NewModel assembles a Model from already-learned component tables.
func NewModel(name string, sources ...ModelSource) (*Model, error) {
	model := &Model{Name: name}
	for _, source := range sources {
		if err := source(model); err != nil {
			return nil, fmt.Errorf("model %q: %w", name, err)
		}
	}
	return model, nil
}

// Tagger returns the POS tagger, or nil when the model has none.
func (m *Model) Tagger() *Tagger { return m.tagger }

// NameFinder returns the entity finder, or nil when the model has none.
func (m *Model) NameFinder() *NameFinder { return m.finder }

// Chunker returns the chunker, or nil when the model has none.
func (m *Model) Chunker() *Chunker { return m.chunker }

// Categorizer returns the categorizer, or nil when the model has none.
func (m *Model) Categorizer() *Categorizer { return m.categorizer }

// On-disk layout: <model>/<component>/Maxent/{labels,predicates,contexts,
// params}.gob, one component directory per installed component.
const (
	taggerDir      = "POSTagger"
	finderDir      = "NameFinder"
	chunkerDir     = "Chunker"
	categorizerDir = "Categorizer"
	maxentDir      = "Maxent"
)

// componentParams carries the per-component settings that live alongside
// the weight table.
type componentParams struct {
	CorrectionConstant float64
	CorrectionParam    float64
	Codec              string
	Language           string
}

// ModelFromDisk loads a Model from the user-provided location.
func ModelFromDisk(path string) (*Model, error) {
	model, err := modelFromFS(os.DirFS(path))
	if err != nil {
		return nil, fmt.Errorf("model at %s: %w", path, err)
	}
	model.Name = filepath.Base(path)
	return model, nil
}

// ModelFromFS loads the model stored in a directory called name anywhere
// within filesys.
func ModelFromFS(name string, filesys fs.FS) (*Model, error) {
	var modelFS fs.FS
	err := fs.WalkDir(filesys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == name {
			modelFS, err = fs.Sub(filesys, path)
			if err != nil {
				return err
			}
			return io.EOF // model located, exit tree traversal
		}
		return nil
	})
	if err != io.EOF {
		if err != nil {
			return nil, fmt.Errorf("model %q: %w", name, err)
		}
		return nil, fmt.Errorf("model %q: not found", name)
	}

	model, err := modelFromFS(modelFS)
	if err != nil {
		return nil, fmt.Errorf("model %q: %w", name, err)
	}
	model.Name = name
	return model, nil
}

func modelFromFS(filesys fs.FS) (*Model, error) {
	model := &Model{}

	load := func(dir string, install func(*MaxentModel, componentParams) error) error {
		sub, err := fs.Sub(filesys, dir)
		if err != nil {
			return nil
		}
		if _, err := fs.Stat(sub, maxentDir); err != nil {
			return nil // component not present
		}
		mm, params, err := loadMaxent(sub)
		if err != nil {
			return fmt.Errorf("%s: %w", dir, err)
		}
		return install(mm, params)
	}

	if err := load(taggerDir, func(mm *MaxentModel, _ componentParams) error {
		model.tagger = NewTagger(mm)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := load(finderDir, func(mm *MaxentModel, params componentParams) error {
		codecName := params.Codec
		if codecName == "" {
			codecName = BioCodecName
		}
		codec, err := CodecFor(codecName)
		if err != nil {
			return err
		}
		model.finder = NewNameFinder(mm, codec)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := load(chunkerDir, func(mm *MaxentModel, _ componentParams) error {
		model.chunker = NewChunker(mm)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := load(categorizerDir, func(mm *MaxentModel, params componentParams) error {
		lang := Language(params.Language)
		if lang == "" {
			lang = English
		}
		model.categorizer = NewCategorizer(mm, lang)
		return nil
	}); err != nil {
		return nil, err
	}

	return model, nil
}

// Write saves a Model to the user-provided location.
func (m *Model) Write(path string) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return err
	}

	write := func(dir string, mm *MaxentModel, params componentParams) error {
		return marshalMaxent(mm, filepath.Join(path, dir), params)
	}

	if m.tagger != nil {
		if err := write(taggerDir, m.tagger.model, componentParams{
			CorrectionConstant: m.tagger.model.correctionConstant,
			CorrectionParam:    m.tagger.model.correctionParam,
		}); err != nil {
			return err
		}
	}
	if m.finder != nil {
		if err := write(finderDir, m.finder.model, componentParams{
			CorrectionConstant: m.finder.model.correctionConstant,
			CorrectionParam:    m.finder.model.correctionParam,
			Codec:              codecName(m.finder.codec),
		}); err != nil {
			return err
		}
	}
	if m.chunker != nil {
		if err := write(chunkerDir, m.chunker.model, componentParams{
			CorrectionConstant: m.chunker.model.correctionConstant,
			CorrectionParam:    m.chunker.model.correctionParam,
		}); err != nil {
			return err
		}
	}
	if m.categorizer != nil {
		if err := write(categorizerDir, m.categorizer.model, componentParams{
			CorrectionConstant: m.categorizer.model.correctionConstant,
			CorrectionParam:    m.categorizer.model.correctionParam,
			Language:           string(m.categorizer.lang),
		}); err != nil {
			return err
		}
	}
	return nil
}

func codecName(codec SequenceCodec) string {
	switch codec.(type) {
	case BilouCodec:
		return BilouCodecName
	default:
		return BioCodecName
	}
}

// marshalMaxent saves one component's table under dir.
func marshalMaxent(m *MaxentModel, dir string, params componentParams) error {
	folder := filepath.Join(dir, maxentDir)
	if err := os.MkdirAll(folder, os.ModePerm); err != nil {
		return err
	}

	encode := func(name string, v any) error {
		component, err := os.Create(filepath.Join(folder, name+".gob"))
		if err != nil {
			return err
		}
		defer component.Close()
		return gob.NewEncoder(component).Encode(v)
	}

	if err := encode("labels", m.labels); err != nil {
		return err
	}
	if err := encode("predicates", m.predicates); err != nil {
		return err
	}
	if err := encode("contexts", m.contexts); err != nil {
		return err
	}
	return encode("params", params)
}

// loadMaxent reads one component's table and re-validates it through
// NewMaxentModel; a table that decodes but is internally inconsistent is
// rejected here, before any inference runs against it.
func loadMaxent(filesys fs.FS) (*MaxentModel, componentParams, error) {
	var labels []string
	var predicates map[string]int
	var contexts []Context
	var params componentParams

	maxent, err := fs.Sub(filesys, maxentDir)
	if err != nil {
		return nil, params, err
	}

	decode := func(name string, v any) error {
		file, err := maxent.Open(name + ".gob")
		if err != nil {
			return err
		}
		defer file.Close()
		if err := gob.NewDecoder(file).Decode(v); err != nil {
			return fmt.Errorf("decoding %s.gob: %w", name, err)
		}
		return nil
	}

	if err := decode("labels", &labels); err != nil {
		return nil, params, err
	}
	if err := decode("predicates", &predicates); err != nil {
		return nil, params, err
	}
	if err := decode("contexts", &contexts); err != nil {
		return nil, params, err
	}
	if err := decode("params", &params); err != nil {
		return nil, params, err
	}

	mm, err := NewMaxentModel(labels, predicates, contexts,
		WithCorrection(params.CorrectionConstant, params.CorrectionParam))
	if err != nil {
		return nil, params, err
	}
	return mm, params, nil
}
