package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"ecocart.dev/ecocart/api/pkg/images"
	"ecocart.dev/ecocart/api/pkg/models"
	"ecocart.dev/ecocart/api/pkg/mongo"
)

type fakeProducts struct {
	items     []models.Product
	listCalls int
	err       error
}

func (f *fakeProducts) List(ctx context.Context) ([]models.Product, error) {
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Product{}, f.items...), nil
}

func (f *fakeProducts) Create(ctx context.Context, p *models.Product) (bson.ObjectID, error) {
	if f.err != nil {
		return bson.ObjectID{}, f.err
	}
	f.items = append(f.items, *p)
	return p.ID, nil
}

func (f *fakeProducts) Delete(ctx context.Context, id bson.ObjectID) error {
	if f.err != nil {
		return f.err
	}
	for i, p := range f.items {
		if p.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNotFound
}

type fakeCache struct {
	products    []models.Product
	hit         bool
	invalidated int
	err         error
}

func (f *fakeCache) GetProducts(ctx context.Context) ([]models.Product, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	return f.products, f.hit, nil
}

func (f *fakeCache) SetProducts(ctx context.Context, products []models.Product) error {
	if f.err != nil {
		return f.err
	}
	f.products, f.hit = products, true
	return nil
}

func (f *fakeCache) Invalidate(ctx context.Context) error {
	f.invalidated++
	f.products, f.hit = nil, false
	return f.err
}

type fakeComments struct {
	items map[bson.ObjectID]models.Comment
	err   error
}

func newFakeComments() *fakeComments {
	return &fakeComments{items: map[bson.ObjectID]models.Comment{}}
}

func (f *fakeComments) ListByProduct(ctx context.Context, productID bson.ObjectID) ([]models.Comment, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Comment{}
	for _, c := range f.items {
		if c.ProductID == productID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (f *fakeComments) RatingSummary(ctx context.Context, productID bson.ObjectID) (models.RatingSummary, error) {
	comments, err := f.ListByProduct(ctx, productID)
	if err != nil || len(comments) == 0 {
		return models.RatingSummary{}, err
	}
	total := 0
	for _, c := range comments {
		total += c.Rating
	}
	return models.RatingSummary{Average: float64(total) / float64(len(comments)), Count: len(comments)}, nil
}

func (f *fakeComments) Get(ctx context.Context, productID, commentID bson.ObjectID) (*models.Comment, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.items[commentID]
	if !ok || c.ProductID != productID {
		return nil, mongo.ErrNotFound
	}
	return &c, nil
}

func (f *fakeComments) Create(ctx context.Context, c *models.Comment) error {
	if f.err != nil {
		return f.err
	}
	if c.ID.IsZero() {
		c.ID = bson.NewObjectID()
	}
	f.items[c.ID] = *c
	return nil
}

func (f *fakeComments) Update(ctx context.Context, productID, commentID bson.ObjectID, set bson.M) error {
	if f.err != nil {
		return f.err
	}
	c, ok := f.items[commentID]
	if !ok || c.ProductID != productID {
		return mongo.ErrNotFound
	}
	if v, ok := set["comment"].(string); ok {
		c.Body = v
	}
	if v, ok := set["rating"].(int); ok {
		c.Rating = v
	}
	if v, ok := set["imageUrl"].(string); ok {
		c.ImageURL = &v
	}
	f.items[commentID] = c
	return nil
}

func (f *fakeComments) Delete(ctx context.Context, productID, commentID bson.ObjectID) error {
	if f.err != nil {
		return f.err
	}
	c, ok := f.items[commentID]
	if !ok || c.ProductID != productID {
		return mongo.ErrNotFound
	}
	delete(f.items, commentID)
	return nil
}

type fakeUsers struct {
	byEmail map[string]models.User
	err     error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]models.User{}}
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, mongo.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) Create(ctx context.Context, u *models.User) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return mongo.ErrDuplicate
	}
	f.byEmail[u.Email] = *u
	return nil
}

func (f *fakeUsers) UpdateByEmail(ctx context.Context, email string, set bson.M) error {
	if f.err != nil {
		return f.err
	}
	u, ok := f.byEmail[email]
	if !ok {
		return mongo.ErrNotFound
	}
	for key, value := range set {
		v := value.(string)
		switch key {
		case "password":
			u.Password = v
		case "name":
			u.Name = v
		case "username":
			u.Username = v
		case "pronouns":
			u.Pronouns = v
		case "bio":
			u.Bio = v
		case "links":
			u.Links = v
		case "gender":
			u.Gender = v
		case "phone":
			u.Phone = v
		case "address":
			u.Address = v
		case "profileImageUrl":
			u.ProfileImageURL = v
		}
	}
	f.byEmail[email] = u
	return nil
}

type fakeOrders struct {
	items []models.Order
	err   error
}

func (f *fakeOrders) Create(ctx context.Context, o *models.Order) (bson.ObjectID, error) {
	if f.err != nil {
		return bson.ObjectID{}, f.err
	}
	f.items = append(f.items, *o)
	return o.ID, nil
}

type fakeImages struct {
	saved []string
	err   error
}

func (f *fakeImages) Save(dir string, up *images.Upload) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	ref := fmt.Sprintf("/images/%s/%d-%s.png", dir, len(f.saved)+1, up.Field)
	f.saved = append(f.saved, ref)
	return ref, nil
}

type fakeCleaner struct {
	mu   sync.Mutex
	refs []string
}

func (f *fakeCleaner) Enqueue(ref string) {
	if ref == "" {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refs = append(f.refs, ref)
}

type fakeCompleter struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}
