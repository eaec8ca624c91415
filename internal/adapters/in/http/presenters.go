package http

import (
	"ordermanager/internal/core/application/usecases/queries"
	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/core/domain/model/ticket"
	"ordermanager/internal/core/domain/rules"
	"ordermanager/internal/generated/servers"
)

func presentOrder(o *order.Order) servers.Order {
	return servers.Order{
		Id:         o.ID().Bytes(),
		ProductIds: o.ProductIDs(),
		Amount:     o.Amount(),
		State:      string(o.State()),
		Metadata:   presentMetadata(o.Metadata()),
		CreatedAt:  o.CreatedAt(),
		UpdatedAt:  o.UpdatedAt(),
	}
}

func presentOrderDetails(view queries.OrderView) servers.OrderDetails {
	return servers.OrderDetails{
		Order:                presentOrder(view.Order),
		AllowedEvents:        eventNames(view.AllowedEvents),
		EventsFiltered:       view.EventsFiltered,
		Enrichment:           presentMetadata(view.Enrichment),
		ApplicableRules:      nonNil(view.ApplicableRules),
		RequiresManualReview: view.RequiresManualReview,
	}
}

func presentTicket(t *ticket.Ticket) servers.Ticket {
	return servers.Ticket{
		Id:        t.ID().Bytes(),
		OrderId:   t.OrderID().Bytes(),
		Reason:    t.Reason(),
		Amount:    t.Amount(),
		Status:    servers.TicketStatus(t.Status()),
		Metadata:  presentMetadata(t.Metadata()),
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}
}

func presentEventRecord(r order.EventRecord) servers.EventRecord {
	return servers.EventRecord{
		Id:        r.ID.Bytes(),
		OrderId:   r.OrderID.Bytes(),
		Event:     string(r.Event),
		OldState:  string(r.OldState),
		NewState:  string(r.NewState),
		Metadata:  presentMetadata(r.Metadata),
		CreatedAt: r.CreatedAt,
	}
}

func presentRule(info rules.Info) servers.Rule {
	return servers.Rule{
		Id:           info.ID,
		Description:  info.Description,
		Kind:         string(info.Kind),
		Priority:     int(info.Priority),
		PriorityName: info.Priority.String(),
		Enabled:      info.Enabled,
	}
}

func presentRules(infos []rules.Info) []servers.Rule {
	out := make([]servers.Rule, len(infos))
	for i, info := range infos {
		out[i] = presentRule(info)
	}
	return out
}

func presentTicketRequests(requests []rules.TicketRequest) []servers.TicketRequest {
	out := make([]servers.TicketRequest, len(requests))
	for i, r := range requests {
		out[i] = servers.TicketRequest{Reason: r.Reason, Amount: r.Amount, Metadata: presentMetadata(r.Metadata)}
	}
	return out
}

func presentSimulation(sim queries.Simulation) servers.Simulation {
	failed := make([]servers.RuleFailure, len(sim.Evaluation.FailedRules))
	for i, f := range sim.Evaluation.FailedRules {
		failed[i] = servers.RuleFailure{RuleId: f.RuleID, Error: f.Error}
	}

	response := servers.Simulation{
		OrderId:         sim.OrderID.Bytes(),
		Amount:          sim.Amount,
		State:           string(sim.State),
		Success:         sim.Evaluation.Success,
		ExecutedRules:   nonNil(sim.Evaluation.ExecutedRules),
		FailedRules:     failed,
		Actions:         nonNil(sim.Evaluation.Actions),
		MetadataUpdates: presentMetadata(sim.Evaluation.MetadataUpdates),
		TicketRequests:  presentTicketRequests(sim.Evaluation.TicketRequests),
		ApplicableRules: presentRules(sim.ApplicableRules),
	}
	if sim.Evaluation.FilteredEvents != nil {
		filtered := eventNames(sim.Evaluation.FilteredEvents)
		response.FilteredEvents = &filtered
	}
	return response
}

func presentPreview(p queries.CreationPreview) servers.OrderPreview {
	response := servers.OrderPreview{
		ValidationPassed: p.ValidationPassed,
		Enrichment:       presentMetadata(p.Enrichment),
		ExecutedRules:    nonNil(p.Business.ExecutedRules),
		Actions:          nonNil(p.Business.Actions),
		MetadataUpdates:  presentMetadata(p.Business.MetadataUpdates),
		TicketRequests:   presentTicketRequests(p.Business.TicketRequests),
	}
	if !p.ValidationPassed {
		msg := p.ValidationError
		response.ValidationError = &msg
	}
	return response
}

func presentMetadata(m kernel.Metadata) servers.Metadata {
	return servers.Metadata(m.Clone())
}

func metadataOf(m *servers.Metadata) kernel.Metadata {
	if m == nil {
		return kernel.Metadata{}
	}
	return kernel.Metadata(*m).Clone()
}

func eventNames(events []order.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = string(e)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
