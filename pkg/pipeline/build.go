package pipeline

import (
	"bytes"
	"context"
	"os"

	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/chart/layer"
	"github.com/matzehuels/chartkit/pkg/errors"
	pkgio "github.com/matzehuels/chartkit/pkg/io"
	"github.com/matzehuels/chartkit/pkg/scene"
)

// dataset is an imported table and the hash of the file it came from.
type dataset struct {
	table pkgio.Table
	hash  string
	hit   bool
}

// LoadDataset imports a data file, going through the dataset cache. The
// cache key is the hash of the file contents and the sheet, so an edited
// file is imported again.
func (r *Runner) LoadDataset(ctx context.Context, path, sheet string, opts Options) (pkgio.Table, bool, error) {
	ds, err := r.loadDataset(ctx, path, sheet, opts)
	return ds.table, ds.hit, err
}

func (r *Runner) loadDataset(ctx context.Context, path, sheet string, opts Options) (dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return dataset{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "data file %s", path)
		}
		return dataset{}, errors.Wrap(errors.ErrCodeInvalidData, err, "read %s", path)
	}
	hash := cache.Hash(raw)
	key := r.Keyer.DatasetKey(hash, sheet)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			t, err := pkgio.ReadJSON(bytes.NewReader(data))
			if err == nil {
				return dataset{table: t, hash: hash, hit: true}, nil
			}
			r.Logger.Debug("discarding unreadable cached dataset", "path", path, "error", err)
		}
	}

	t, err := pkgio.Import(path, pkgio.WithSheet(sheet))
	if err != nil {
		return dataset{}, err
	}
	var buf bytes.Buffer
	if err := pkgio.WriteJSON(t, &buf); err == nil {
		if err := r.Cache.Set(ctx, key, buf.Bytes(), opts.DatasetTTL); err != nil {
			r.Logger.Warn("cache dataset", "path", path, "error", err)
		}
	}
	return dataset{table: t, hash: hash}, nil
}

// BuildLayer creates the layer declared by lc over the rows of t. Series
// names default to the table's column names.
func BuildLayer(lc LayerConfig, t pkgio.Table) (layer.Layer, error) {
	if err := lc.Validate(); err != nil {
		return nil, err
	}
	names := lc.Names
	if len(names) == 0 {
		names = t.Names
	}
	opts := []layer.Option{layer.WithNames(names...)}
	if lc.Caption != "" {
		opts = append(opts, layer.WithCaption(lc.Caption))
	}
	if len(lc.Colors) > 0 {
		opts = append(opts, layer.WithColors(lc.Colors...))
	}
	if len(lc.Hidden) > 0 {
		hidden := make([]layer.HiddenPosition, len(lc.Hidden))
		for i, pos := range lc.Hidden {
			hidden[i] = layer.HiddenPosition{Position: pos, IsHidden: true}
		}
		opts = append(opts, layer.WithHidden(hidden...))
	}

	switch lc.Kind {
	case LayerBars:
		b := layer.NewBars(lc.Axis, t.Data, opts...)
		b.ShowValues = lc.ShowValues
		if lc.ValuePosition != "" {
			b.ValuePosition = layer.ValuePosition(lc.ValuePosition)
		}
		if lc.Dynamics != nil {
			b.Dynamics = *lc.Dynamics
		}
		return b, nil
	case LayerStacked:
		s := layer.NewStackedBars(lc.Axis, t.Data, opts...)
		if lc.Dynamics != nil {
			s.Dynamics = *lc.Dynamics
		}
		return s, nil
	case LayerFullStacked:
		s := layer.NewFullStackedBars(lc.Axis, t.Data, opts...)
		if lc.Dynamics != nil {
			s.Dynamics = *lc.Dynamics
		}
		return s, nil
	case LayerLine:
		l := layer.NewLine(lc.Axis, t.Data, opts...)
		l.Curve, _ = scene.ParseCurve(lc.Curve)
		l.Dashed = lc.Dashed
		return l, nil
	case LayerArea:
		a := layer.NewArea(lc.Axis, t.Data, opts...)
		a.Curve, _ = scene.ParseCurve(lc.Curve)
		a.Dashed = lc.Dashed
		return a, nil
	}
	return nil, ValidateLayerKind(lc.Kind)
}
