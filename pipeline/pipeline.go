/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"dirpx.dev/dproblem"
	"dirpx.dev/dproblem/apis"
	"dirpx.dev/dproblem/classify"
	"dirpx.dev/dproblem/code"
	"dirpx.dev/dproblem/config"
	"dirpx.dev/dproblem/mapping"
	"dirpx.dev/dproblem/problem"
	"dirpx.dev/dproblem/reason"
	"dirpx.dev/dproblem/statusmap"
	"go.uber.org/zap"
)

// ErrNoProblem is returned when a classifier returns neither a description
// nor an error.
var ErrNoProblem = errors.New("pipeline: classifier returned no problem")

// Pipeline resolves faults into problem descriptions.
type Pipeline struct {
	log         *zap.Logger
	cfg         config.Config
	statuses    apis.StatusMapper
	mappings    mapping.Chain
	classifiers classify.Chain
	labels      Labels
}

// New builds an immutable Pipeline. A nil logger disables logging.
func New(logger *zap.Logger, opts ...Option) (*Pipeline, error) {
	b := &builder{cfg: config.Default()}
	for _, o := range opts {
		if o != nil {
			o(b)
		}
	}

	cfg := b.cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	statusOpts := make([]statusmap.Option, 0, len(b.statusOpts)+1)
	statusOpts = append(statusOpts, statusmap.WithHTTPDefaults(cfg.StatusDefaults()))
	statusOpts = append(statusOpts, b.statusOpts...)
	statuses, err := statusmap.New(statusOpts...)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	mappings, err := mapping.NewChain(mapping.Env{Config: cfg, Statuses: statuses}, b.bindings...)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		log:         logger,
		cfg:         cfg,
		statuses:    statuses,
		mappings:    mappings,
		classifiers: classify.NewChain(b.classifiers, classify.Defaults(cfg, statuses)),
		labels:      DefaultLabels().with(cfg.Labels).with(b.labels),
	}, nil
}

// Config returns the effective configuration.
func (p *Pipeline) Config() config.Config { return p.cfg }

// Logger returns the pipeline logger.
func (p *Pipeline) Logger() *zap.Logger { return p.log }

// Statuses returns the status mapper shared by built-in classifiers and
// mappers.
func (p *Pipeline) Statuses() apis.StatusMapper { return p.statuses }

// Handle resolves fault into a Delivery. It always yields a description
// unless a classifier or mapper fails, in which case that failure is
// returned unchanged and must be handled by a fresh invocation.
func (p *Pipeline) Handle(ctx context.Context, req Request, fault error) (Delivery, error) {
	log := p.logger(req)
	raw := fault
	fault = unwrap(fault)

	var declared *dproblem.Error
	if errors.As(fault, &declared) {
		d, ok, err := p.mapDeclared(ctx, req, log, fault, declared)
		if err != nil || ok {
			return d, err
		}
	}

	cl := p.classifiers.Resolve(fault)
	if cl == nil {
		// raw keeps the panic stack of an unwrapped invocation in the log.
		return p.Unhandled(req, raw), nil
	}
	prob, err := cl.Classify(ctx, fault)
	if err != nil {
		return Delivery{}, err
	}
	if prob == nil {
		return Delivery{}, fmt.Errorf("%w: %s", ErrNoProblem, cl.HandledType())
	}
	prob.Complete(p.cfg.ProblemDefaults())
	prob.ProblemInstanceURI = instance(req)

	label := p.labels.Public(cl.HandledType())
	p.logHandled(log, prob, label, fault)
	c, r := p.category(fault, prob)
	return Delivery{Problem: prob, Resolution: ResolvedByClassifier, Label: label, Code: c, Reason: r}, nil
}

// Deliver is Handle for transport boundaries. When a production function
// fails, its error is handled by one fresh invocation; if that fails as well,
// the second error is described as unhandled.
func (p *Pipeline) Deliver(ctx context.Context, req Request, fault error) Delivery {
	d, err := p.Handle(ctx, req, fault)
	if err == nil {
		return d
	}
	d, err = p.Handle(ctx, req, err)
	if err == nil {
		return d
	}
	return p.Unhandled(req, err)
}

func (p *Pipeline) mapDeclared(ctx context.Context, req Request, log *zap.Logger, fault error, declared *dproblem.Error) (Delivery, bool, error) {
	matches := p.mappings.Matches(declared)
	switch len(matches) {
	case 0:
		return Delivery{}, false, nil
	case 1:
	default:
		log.Warn("multiple mappings for declared fault found, skipping specific mapping",
			zap.String("code", declared.Code.String()),
			zap.Int("matches", len(matches)),
		)
		return Delivery{}, false, nil
	}

	prob, err := matches[0].Map(ctx, declared)
	if err != nil {
		return Delivery{}, false, err
	}
	if prob.ProblemInstanceURI == "" {
		prob.ProblemInstanceURI = instance(req)
	}

	label := p.labels.Public(classify.TypeOf(declared.Code))
	p.logHandled(log, prob, label, fault)
	return Delivery{
		Problem:    prob,
		Resolution: ResolvedByMapping,
		Label:      label,
		Code:       declared.Code,
		Reason:     declared.Reason,
	}, true, nil
}

// category returns the category a classified problem stands for: the tag of
// a coded fault, otherwise the category named by the problem type URI.
func (p *Pipeline) category(fault error, prob *problem.Problem) (code.Code, reason.Reason) {
	var ce apis.CodedError
	if errors.As(fault, &ce) {
		c, err := code.Parse(ce.ErrorCode())
		if err != nil {
			return code.Internal, reason.Empty
		}
		var r reason.Reason
		if re, ok := ce.(apis.ReasonedError); ok {
			r, _ = reason.Parse(re.ErrorReason())
		}
		return c, r
	}
	if prob.ProblemTypeURI == problem.GenericTypeURI(p.cfg.TypeNamespace) {
		return code.Empty, reason.Empty
	}
	slug, ok := strings.CutPrefix(prob.ProblemTypeURI, problem.TypeURI(p.cfg.TypeNamespace, ""))
	if !ok {
		return code.Empty, reason.Empty
	}
	c, err := code.Parse(slug)
	if err != nil {
		return code.Empty, reason.Empty
	}
	return c, reason.Empty
}

// Unhandled describes fault as an internal error. It never fails and is the
// last resort of transports when Handle itself failed.
func (p *Pipeline) Unhandled(req Request, fault error) Delivery {
	prob := &problem.Problem{
		HTTPStatus:         http.StatusInternalServerError,
		Title:              p.cfg.DefaultTitle,
		ProblemTypeURI:     problem.UnhandledTypeURI(p.cfg.TypeNamespace),
		ProblemInstanceURI: problem.InstanceURI(p.cfg.InstanceBaseURI, problem.Number()),
	}

	if fault != nil {
		fields := []zap.Field{
			zap.String("problem_instance", prob.ProblemInstanceURI),
			zap.Error(fault),
		}
		var inv *dproblem.InvocationError
		if errors.As(fault, &inv) {
			fields = append(fields, zap.Any("panic", inv.Value), zap.ByteString("stack", inv.Stack))
		}
		p.logger(req).Error(fmt.Sprintf("[%s] unhandled fault: %v", prob.ProblemInstanceURI, fault), fields...)
	}
	return Delivery{Problem: prob, Resolution: ResolvedUnhandled}
}

func (p *Pipeline) logHandled(log *zap.Logger, prob *problem.Problem, label string, fault error) {
	fields := []zap.Field{
		zap.String("problem_instance", prob.ProblemInstanceURI),
		zap.String("handled_type", label),
		zap.Int("http_status", prob.HTTPStatus),
		zap.Error(fault),
	}
	var declared *dproblem.Error
	if errors.As(fault, &declared) && len(declared.Details) > 0 {
		fields = append(fields, zap.Any("details", declared.Details))
	}
	log.Info(fmt.Sprintf("[%s] %s handled: %s", prob.ProblemInstanceURI, label, fault.Error()), fields...)
}

func (p *Pipeline) logger(req Request) *zap.Logger {
	if req != nil {
		if l := req.Logger(); l != nil {
			return l
		}
	}
	return p.log
}

// unwrap replaces an invocation wrapper by its inner error. Applied once.
func unwrap(fault error) error {
	if inv, ok := fault.(*dproblem.InvocationError); ok && inv.Inner != nil {
		return inv.Inner
	}
	return fault
}

func instance(req Request) string {
	if req == nil {
		return problem.InstanceURI("", problem.Number())
	}
	return req.ProblemInstanceURI()
}
