package sitedata

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mauro-rocha/portfolio-backend/internal/content"
	"github.com/mauro-rocha/portfolio-backend/internal/sequence"
)

// Every mutator gates on a live session and reports plain success or
// failure. Causes are logged, never propagated: the admin UI only needs
// the boolean. The gate is a convenience, not a security boundary; the
// store's own access rules are the enforcement point.

func (d *Data) gate(op string) bool {
	if d.session == nil || !d.session.Authenticated() {
		return false
	}
	if d.st == nil {
		log.Printf("[warn] operation=%s message=remote store not configured", op)
		return false
	}
	return true
}

// AddProject allocates the next project id and writes the full record.
// The id on p is ignored.
func (d *Data) AddProject(ctx context.Context, p content.Project) bool {
	if !d.gate("sitedata.project.add") {
		return false
	}

	id, err := d.alloc.NextID(ctx, sequence.Projects)
	if err != nil {
		log.Printf("[error] operation=sitedata.project.add error=%v", err)
		return false
	}
	p.ID = id

	if err := d.st.Set(ctx, docPath(sequence.Projects, id), toDoc(p), false); err != nil {
		log.Printf("[error] operation=sitedata.project.add id=%d error=%v", id, err)
		return false
	}
	return true
}

// UpdateProject merge-writes the record under its existing id; fields
// absent from p stay untouched remotely.
func (d *Data) UpdateProject(ctx context.Context, p content.Project) bool {
	if !d.gate("sitedata.project.update") {
		return false
	}

	if err := d.st.Set(ctx, docPath(sequence.Projects, p.ID), toDoc(p), true); err != nil {
		log.Printf("[error] operation=sitedata.project.update id=%d error=%v", p.ID, err)
		return false
	}
	return true
}

func (d *Data) DeleteProject(ctx context.Context, id int64) bool {
	if !d.gate("sitedata.project.delete") {
		return false
	}

	if err := d.st.Delete(ctx, docPath(sequence.Projects, id)); err != nil {
		log.Printf("[error] operation=sitedata.project.delete id=%d error=%v", id, err)
		return false
	}
	return true
}

func (d *Data) AddService(ctx context.Context, s content.Service) bool {
	if !d.gate("sitedata.service.add") {
		return false
	}

	id, err := d.alloc.NextID(ctx, sequence.Services)
	if err != nil {
		log.Printf("[error] operation=sitedata.service.add error=%v", err)
		return false
	}
	s.ID = id

	if err := d.st.Set(ctx, docPath(sequence.Services, id), toDoc(s), false); err != nil {
		log.Printf("[error] operation=sitedata.service.add id=%d error=%v", id, err)
		return false
	}
	return true
}

func (d *Data) UpdateService(ctx context.Context, s content.Service) bool {
	if !d.gate("sitedata.service.update") {
		return false
	}

	if err := d.st.Set(ctx, docPath(sequence.Services, s.ID), toDoc(s), true); err != nil {
		log.Printf("[error] operation=sitedata.service.update id=%d error=%v", s.ID, err)
		return false
	}
	return true
}

func (d *Data) DeleteService(ctx context.Context, id int64) bool {
	if !d.gate("sitedata.service.delete") {
		return false
	}

	if err := d.st.Delete(ctx, docPath(sequence.Services, id)); err != nil {
		log.Printf("[error] operation=sitedata.service.delete id=%d error=%v", id, err)
		return false
	}
	return true
}

// UpdateContent applies a single-section patch over the current content,
// normalizes the result, updates local state optimistically and then
// merge-writes the whole document. On write failure the optimistic local
// update stands; the false return is the only signal.
func (d *Data) UpdateContent(ctx context.Context, patch content.SectionPatch) bool {
	if !d.gate("sitedata.content.update") {
		return false
	}

	d.mu.RLock()
	merged := copyContent(d.content)
	d.mu.RUnlock()

	patch.Apply(&merged)
	merged = content.Normalize(content.Map(merged))

	d.setContent(merged)

	if err := d.st.Set(ctx, ContentPath, content.Map(merged), true); err != nil {
		log.Printf("[error] operation=sitedata.content.update section=%s error=%v", patch.Section(), err)
		return false
	}
	return true
}

func docPath(collection string, id int64) string {
	return fmt.Sprintf("%s/%d", collection, id)
}

func toDoc(v any) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return map[string]any{}
	}
	return out
}
