package graph

import (
	"context"
	"fmt"
	"log"
	"strings"

	"siteforge/internal/blueprint"
	"siteforge/internal/engine"
	"siteforge/internal/llm"
	"siteforge/internal/util/jsonutil"
)

const defaultSkeletonAttempts = 3

// Engine drives a session's state through the orchestration graph. It is
// stateless itself; everything per-conversation lives in State.
type Engine struct {
	LLM      llm.Client
	IDs      blueprint.IDSource
	Store    ProjectStore // optional
	Deployer Deployer     // optional

	MaxSkeletonAttempts int
}

func NewEngine(cli llm.Client, ids blueprint.IDSource) *Engine {
	return &Engine{LLM: cli, IDs: ids, MaxSkeletonAttempts: defaultSkeletonAttempts}
}

// HandleMessage runs one user turn to completion: routing, any number of
// internal phase transitions, and exactly one assistant reply. The state is
// mutated in place and left at a phase that accepts the next user message.
func (e *Engine) HandleMessage(ctx context.Context, st *State, userMsg string) (Message, error) {
	st.History = append(st.History, Message{Role: "user", Content: userMsg})

	// Terminal-phase routing: once a document exists, a non-deploy message
	// is an edit instruction and skips intent classification entirely.
	if st.Phase == PhaseEnd && st.Doc != nil {
		if looksLikeDeployRequest(userMsg) {
			st.Phase = PhaseDeploy
		} else {
			st.Phase = PhasePatch
		}
	} else if st.Phase == PhaseEnd {
		st.Phase = PhaseConversation
	}

	var (
		architect *blueprint.Document
		tracks    []engine.TrackResult
	)
	for {
		switch st.Phase {
		case PhaseConversation:
			reply, next, err := e.runConversation(ctx, st, userMsg)
			if err != nil {
				return Message{}, err
			}
			if next == PhaseConversation {
				return e.finish(st, reply), nil
			}
			st.Phase = next

		case PhaseSkeleton:
			st.Doc = e.runSkeleton(ctx, st)
			st.Phase = PhaseParallel

		case PhaseParallel:
			architect, tracks = e.runTracks(ctx, st.Doc)
			st.Phase = PhaseStitcher

		case PhaseStitcher:
			st.Doc = engine.Stitch(architect, tracks)
			st.Phase = PhaseLiner

		case PhaseLiner:
			st.Doc, _ = engine.Lint(st.Doc, e.IDs)
			st.Phase = PhaseSEO

		case PhaseSEO:
			e.runSEO(ctx, st)
			st.Phase = PhaseLinter

		case PhaseLinter:
			reply := e.runLinter(ctx, st)
			st.Phase = PhaseEnd
			return e.finish(st, reply), nil

		case PhasePatch:
			if err := e.runPatch(ctx, st, userMsg); err != nil {
				st.Phase = PhaseEnd
				return e.finish(st, Message{
					Role:    "assistant",
					Content: "I couldn't turn that into a concrete edit. Could you describe the change differently, naming the page or section?",
				}), nil
			}
			st.Phase = PhaseLiner

		case PhaseDeploy:
			reply := e.runDeploy(ctx, st)
			st.Phase = PhaseEnd
			return e.finish(st, reply), nil

		default:
			return Message{}, fmt.Errorf("graph: unknown phase %q", st.Phase)
		}
	}
}

func (e *Engine) finish(st *State, reply Message) Message {
	st.History = append(st.History, reply)
	return reply
}

// runConversation classifies intent and either replies directly or hands
// over to the next phase.
func (e *Engine) runConversation(ctx context.Context, st *State, userMsg string) (Message, Phase, error) {
	res, err := classifyIntent(ctx, e.LLM, st)
	if err != nil {
		return Message{}, PhaseConversation, fmt.Errorf("conversation phase: %w", err)
	}
	switch res.Intent {
	case IntentProposePlan:
		if res.PlanOutline != "" {
			st.Outline = res.PlanOutline
		}
		return Message{
			Role:    "assistant",
			Content: res.Message,
			Actions: []Action{{Text: "Build it", Payload: "Looks good, build it.", Kind: "button"}},
		}, PhaseConversation, nil
	case IntentConfirm:
		if st.Outline == "" {
			return Message{
				Role:    "assistant",
				Content: "There's no plan to build yet. Tell me about the site you want first.",
			}, PhaseConversation, nil
		}
		return Message{}, PhaseSkeleton, nil
	case IntentDeploy:
		if st.Doc == nil {
			return Message{
				Role:    "assistant",
				Content: "There's nothing to deploy yet. Let's design the site first.",
			}, PhaseConversation, nil
		}
		return Message{}, PhaseDeploy, nil
	default:
		return Message{Role: "assistant", Content: res.Message}, PhaseConversation, nil
	}
}

// runSkeleton asks for the scaffold with bounded retries, validating each
// attempt and feeding failures back. If every attempt is rejected it falls
// back to a deterministic scaffold so the build always proceeds.
func (e *Engine) runSkeleton(ctx context.Context, st *State) *blueprint.Document {
	attempts := e.MaxSkeletonAttempts
	if attempts <= 0 {
		attempts = defaultSkeletonAttempts
	}
	input := map[string]any{"outline": st.Outline}
	for i := 1; i <= attempts; i++ {
		st.Attempts = i
		raw, err := e.LLM.GenerateJSON(llm.WithRole(ctx, "skeleton"), promptSkeleton, input)
		if err != nil {
			log.Printf("[graph] skeleton attempt %d/%d: %v", i, attempts, err)
			continue
		}
		doc, err := blueprint.RawToCanonical(string(raw), e.IDs)
		if err != nil {
			log.Printf("[graph] skeleton attempt %d/%d parse: %v", i, attempts, err)
			input["validation_errors"] = err.Error()
			continue
		}
		doc = engine.PopulateSkeleton(doc)
		if res := blueprint.Validate(doc); !res.Valid {
			st.ValidationError = res.Detail()
			log.Printf("[graph] skeleton attempt %d/%d invalid:\n%s", i, attempts, res.Detail())
			input["validation_errors"] = res.Detail()
			continue
		}
		st.ValidationError = ""
		return doc
	}
	log.Printf("[graph] skeleton exhausted %d attempts, using deterministic fallback", attempts)
	return e.fallbackSkeleton(st.Outline)
}

func (e *Engine) fallbackSkeleton(outline string) *blueprint.Document {
	name := "Your Website"
	for _, line := range strings.Split(outline, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "#-* "))
		if line != "" {
			if len(line) > 40 {
				line = line[:40]
			}
			name = line
			break
		}
	}
	return engine.GenerateSkeleton(engine.SkeletonInput{
		BrandingName: name,
		Primary:      blueprint.DefaultPrimary,
		Accent:       blueprint.DefaultAccent,
		Paths:        []string{"/", "/about", "/contact"},
	})
}

type seoResult struct {
	Pages []struct {
		Path string        `json:"path"`
		SEO  blueprint.SEO `json:"seo"`
	} `json:"pages"`
	GlobalKeywords []string `json:"global_keywords"`
}

// runSEO rewrites per-page metadata from a content preview and injects the
// Organization JSON-LD. Failures are logged and skipped, never fatal.
func (e *Engine) runSEO(ctx context.Context, st *State) {
	raw, err := e.LLM.GenerateJSON(llm.WithRole(ctx, "seo"), promptSEO, seoPreview(st.Doc))
	if err != nil {
		log.Printf("[graph] seo phase skipped: %v", err)
		st.Doc = engine.InjectOrganizationJSONLD(st.Doc)
		return
	}
	var res seoResult
	if err := jsonutil.ExtractRaw(raw, &res); err != nil {
		log.Printf("[graph] seo phase result unusable: %v", err)
		st.Doc = engine.InjectOrganizationJSONLD(st.Doc)
		return
	}
	byPath := make(map[string]blueprint.SEO, len(res.Pages))
	for _, p := range res.Pages {
		byPath[p.Path] = p.SEO
	}
	for i := range st.Doc.Pages {
		if seo, ok := byPath[st.Doc.Pages[i].Path]; ok {
			if seo.Title != "" {
				st.Doc.Pages[i].SEO.Title = seo.Title
			}
			if seo.Description != "" {
				st.Doc.Pages[i].SEO.Description = seo.Description
			}
		}
	}
	if len(res.GlobalKeywords) > 0 {
		st.Keywords = res.GlobalKeywords
	}
	st.Doc = engine.InjectOrganizationJSONLD(st.Doc)
}

// seoPreview compacts each page to its metadata plus a flat text sample of
// its components, keeping the prompt small.
func seoPreview(doc *blueprint.Document) map[string]any {
	pages := make([]map[string]any, 0, len(doc.Pages))
	for _, page := range doc.Pages {
		var b strings.Builder
		for _, comp := range page.PuckData.Content {
			for _, key := range []string{"title", "subtitle", "description"} {
				if s, ok := comp.Props[key].(string); ok && s != "" {
					b.WriteString(s)
					b.WriteString(" ")
				}
			}
		}
		text := b.String()
		if len(text) > 600 {
			text = text[:600]
		}
		pages = append(pages, map[string]any{
			"path": page.Path,
			"seo":  page.SEO,
			"text": strings.TrimSpace(text),
		})
	}
	return map[string]any{"brand": doc.Branding.Name, "pages": pages}
}

// runLinter is the final normalize-and-validate gate. Validation failures
// here never block: the document always reaches the terminal phase, with
// the issues surfaced to the user.
func (e *Engine) runLinter(ctx context.Context, st *State) Message {
	doc, _ := engine.Lint(st.Doc, e.IDs)
	st.Doc = doc

	res := blueprint.Validate(doc)
	if res.Valid {
		st.ValidationError = ""
	} else {
		st.ValidationError = res.Detail()
		log.Printf("[graph] final validation reported issues:\n%s", res.Detail())
	}

	e.persist(ctx, st)

	content := fmt.Sprintf("Your website for %s is ready: %d pages generated. Review it and ask for any tweaks, or deploy when you're happy.",
		doc.Branding.Name, len(doc.Pages))
	if !res.Valid {
		content += "\n\nHeads up, a few fields may need attention:\n" + res.Detail()
	}
	return Message{
		Role:    "assistant",
		Content: content,
		Actions: []Action{{Text: "Deploy", Payload: "Deploy the site.", Kind: "button"}},
	}
}

// persist writes the current document to the project store. Best effort.
func (e *Engine) persist(ctx context.Context, st *State) {
	if e.Store == nil || st.Doc == nil {
		return
	}
	id, err := e.Store.UpsertProject(ctx, st.UserID, st.Doc.Branding.Name, st.Doc, st.StoreProjectID)
	if err != nil {
		log.Printf("[graph] project store write failed: %v", err)
		return
	}
	st.StoreProjectID = id
}

type patchResult struct {
	Patches []engine.AtomicPatch `json:"patches"`
}

// runPatch translates the edit instruction into atomic patches and applies
// them. Every patched document re-runs the liner, seo, and linter phases.
func (e *Engine) runPatch(ctx context.Context, st *State, instruction string) error {
	input := map[string]any{
		"document":    st.Doc,
		"instruction": instruction,
	}
	raw, err := e.LLM.GenerateJSON(llm.WithRole(ctx, "patch"), promptPatch, input)
	if err != nil {
		return fmt.Errorf("patch phase: %w", err)
	}
	var res patchResult
	if err := jsonutil.ExtractRaw(raw, &res); err != nil {
		return fmt.Errorf("patch phase: %w", err)
	}
	if len(res.Patches) == 0 {
		return fmt.Errorf("patch phase: no patches produced")
	}
	st.Doc = engine.ApplyPatches(st.Doc, res.Patches)
	return nil
}

// runDeploy hands the document to the deployer and records the result. A
// session deploys at most once: repeat requests get the existing URL back,
// which also keeps anonymous sessions from minting duplicate sites.
func (e *Engine) runDeploy(ctx context.Context, st *State) Message {
	if st.DeployedURL != "" {
		return Message{
			Role:    "assistant",
			Content: fmt.Sprintf("The site is already live at %s.", st.DeployedURL),
			Actions: []Action{{Text: "View Live Site", Payload: st.DeployedURL, Kind: "url"}},
		}
	}
	if e.Deployer == nil {
		return Message{
			Role:    "assistant",
			Content: "Deployment isn't configured on this server, so I can't publish the site from here.",
		}
	}
	url, err := e.Deployer.Deploy(ctx, st.Doc, st.UserID)
	if err != nil {
		log.Printf("[graph] deploy failed: %v", err)
		return Message{
			Role:    "assistant",
			Content: "Deployment failed. The site is unchanged; you can try again in a moment.",
		}
	}
	st.DeployedURL = url
	e.persist(ctx, st)
	if e.Store != nil && st.StoreProjectID != "" {
		if err := e.Store.RecordDeployment(ctx, st.StoreProjectID, url, "production"); err != nil {
			log.Printf("[graph] deployment record failed: %v", err)
		}
	}
	return Message{
		Role:    "assistant",
		Content: fmt.Sprintf("Your site is live at %s.", url),
		Actions: []Action{{Text: "Open site", Payload: url, Kind: "url"}},
	}
}
