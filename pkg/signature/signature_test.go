package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/cskit/pkg/decl"
	"github.com/toyz/cskit/pkg/emit"
	cserrors "github.com/toyz/cskit/pkg/errors"
)

func TestParseMethod_Simple(t *testing.T) {
	m, err := ParseMethod("public string GetName()")
	require.NoError(t, err)

	assert.Equal(t, "GetName", m.Name)
	assert.Equal(t, "string", m.ReturnType)
	assert.Equal(t, decl.Public, m.Access)
	assert.Empty(t, m.Parameters)
	assert.False(t, m.IsExtension())
}

func TestParse_DetectsKind(t *testing.T) {
	testCases := []struct {
		name      string
		signature string
		kind      decl.Kind
		declName  string
	}{
		{name: "method", signature: "public void Run()", kind: decl.KindMethod, declName: "Run"},
		{name: "generic method", signature: "T Get<T>()", kind: decl.KindMethod, declName: "Get"},
		{name: "property", signature: "public int Count { get; set; }", kind: decl.KindProperty, declName: "Count"},
		{name: "expression property", signature: "public int Twice => value * 2", kind: decl.KindProperty, declName: "Twice"},
		{name: "field", signature: "private int count", kind: decl.KindField, declName: "count"},
		{name: "field with initializer", signature: "private int count = 0;", kind: decl.KindField, declName: "count"},
		{name: "constructor", signature: "public Widget(string name)", kind: decl.KindConstructor, declName: "Widget"},
		{name: "operator", signature: "public static bool operator ==(A a, A b)", kind: decl.KindOperator, declName: "operator =="},
		{name: "conversion", signature: "public static explicit operator int(A a)", kind: decl.KindOperator, declName: "explicit operator int"},
		{name: "indexer", signature: "public string this[int i] { get; }", kind: decl.KindIndexer, declName: "this"},
		{name: "event", signature: "public event EventHandler Changed", kind: decl.KindEvent, declName: "Changed"},
		{name: "class", signature: "public sealed class Repo<T> : Base where T : class", kind: decl.KindType, declName: "Repo"},
		{name: "record struct", signature: "public readonly record struct Pair(int A, int B)", kind: decl.KindType, declName: "Pair"},
		{name: "delegate", signature: "public delegate void Handler(object sender)", kind: decl.KindType, declName: "Handler"},
		{name: "explicit interface method", signature: "void IDisposable.Dispose()", kind: decl.KindMethod, declName: "IDisposable.Dispose"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Parse(tc.signature)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, m.Kind())
			assert.Equal(t, tc.declName, m.DeclName())
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	signatures := []string{
		"public string GetName()",
		"public static bool TryParse(string s, out int value)",
		"internal Dictionary<string, List<int>> Map(IEnumerable<KeyValuePair<string, int>> pairs, int x = 5)",
		"public static T Max<T>(this IEnumerable<T> source) where T : IComparable<T>, new()",
		`[Obsolete("old")] protected internal virtual async Task<int?> RunAsync(CancellationToken ct = default)`,
		"[return: NotNull] public string Describe([CallerMemberName] string caller = \"\")",
		"public (int a, string b) Pair(ref int x, in Span<byte> buffer, params object[] rest)",
		"public int Count { get; private set; }",
		`public string Name { get; init; } = "x"`,
		"public required int Id { get; set; }",
		"public int[] Values => values",
		"public string this[int index] { get; set; }",
		"public string this[int i, int j] => cells[i, j]",
		"public static Money operator +(Money a, Money b)",
		"public static Money operator -(Money a)",
		"public static bool operator >>(Money a, int b)",
		"public static implicit operator decimal(Money m) => m.amount",
		"public Widget(string name, int size) : this(name, size * 2)",
		"static Widget()",
		"private readonly List<string> items = new()",
		"public const int Max = 10",
		"public event EventHandler<string> Changed",
		"public sealed partial class Repo<T> : Base, IDisposable where T : class",
		"public record Point(int X, int Y)",
		"public interface IReader<out T>",
		"public delegate TResult Map<in T, out TResult>(T item) where T : notnull",
		"public enum Color : byte",
		"public int Sum(int[,] grid, int* ptr)",
		"public global::System.String Qualified()",
		"public ref int Find(scoped ref readonly int key)",
		"public ref readonly Item this[int i] => ref items[i]",
		"int IComparable<int>.CompareTo(int other)",
		"public delegate ref T Selector<T>(Span<T> items)",
	}

	for _, sig := range signatures {
		t.Run(sig, func(t *testing.T) {
			first, err := Parse(sig)
			require.NoError(t, err)

			rendered := emit.Signature(first)
			require.NotEmpty(t, rendered)

			second, err := Parse(rendered)
			require.NoError(t, err, "re-parsing %q", rendered)
			assert.Equal(t, first, second)
			assert.Equal(t, rendered, emit.Signature(second))
		})
	}
}

func TestParse_ReferenceForms(t *testing.T) {
	testCases := []struct {
		name      string
		signature string
		ret       string
		declName  string
		params    []decl.Parameter
	}{
		{
			name:      "ref return",
			signature: "public ref int Slot(int i)",
			ret:       "ref int",
			declName:  "Slot",
			params:    []decl.Parameter{decl.NewParameter("int", "i")},
		},
		{
			name:      "ref readonly return",
			signature: "ref readonly Vector Origin()",
			ret:       "ref readonly Vector",
			declName:  "Origin",
		},
		{
			name:      "ref readonly parameter",
			signature: "void Use(ref readonly Guid id)",
			ret:       "void",
			declName:  "Use",
			params:    []decl.Parameter{decl.NewParameter("Guid", "id").AsRefReadonly()},
		},
		{
			name:      "scoped parameters",
			signature: "void Fill(scoped Span<byte> buffer, scoped ref int n)",
			ret:       "void",
			declName:  "Fill",
			params: []decl.Parameter{
				decl.NewParameter("Span<byte>", "buffer").AsScoped(),
				decl.NewParameter("int", "n").AsScoped().AsRef(),
			},
		},
		{
			name:      "type named scoped",
			signature: "void Keep(scoped value, scoped scoped)",
			ret:       "void",
			declName:  "Keep",
			params: []decl.Parameter{
				decl.NewParameter("scoped", "value"),
				decl.NewParameter("scoped", "scoped"),
			},
		},
		{
			name:      "generic explicit interface",
			signature: "int IComparable<int>.CompareTo(int other)",
			ret:       "int",
			declName:  "IComparable<int>.CompareTo",
			params:    []decl.Parameter{decl.NewParameter("int", "other")},
		},
		{
			name:      "nested generic explicit interface",
			signature: "bool IDictionary<string, List<int>>.TryGetValue(string key, out List<int> value)",
			ret:       "bool",
			declName:  "IDictionary<string, List<int>>.TryGetValue",
			params: []decl.Parameter{
				decl.NewParameter("string", "key"),
				decl.NewParameter("List<int>", "value").AsOut(),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := ParseMethod(tc.signature)
			require.NoError(t, err)
			assert.Equal(t, tc.ret, m.ReturnType)
			assert.Equal(t, tc.declName, m.Name)
			assert.Equal(t, tc.params, m.Parameters)
		})
	}
}

func TestParse_ReferenceFormErrors(t *testing.T) {
	testCases := []struct {
		name      string
		signature string
	}{
		{name: "ref constructor", signature: "public ref Widget()"},
		{name: "ref operator", signature: "public static ref int operator +(A a, A b)"},
		{name: "repeated scoped", signature: "void M(scoped scoped ref int x)"},
		{name: "readonly before ref", signature: "void M(readonly ref int x)"},
		{name: "out readonly", signature: "void M(out readonly int x)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.signature)
			require.Error(t, err)
			assert.ErrorIs(t, err, cserrors.ErrInvalidSignature)
		})
	}
}

func TestParse_WhitespaceTolerance(t *testing.T) {
	testCases := []struct {
		spaced    string
		canonical string
	}{
		{
			spaced:    "  public   string\tGetName (  )  ;  ",
			canonical: "public string GetName()",
		},
		{
			spaced:    "internal Dictionary < string ,List< int > > Map ( int   x=5 )",
			canonical: "internal Dictionary<string, List<int>> Map(int x = 5)",
		},
		{
			spaced:    "public int Count{get;set;}",
			canonical: "public int Count { get; set; }",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.canonical, func(t *testing.T) {
			spaced, err := Parse(tc.spaced)
			require.NoError(t, err)
			canonical, err := Parse(tc.canonical)
			require.NoError(t, err)
			assert.Equal(t, canonical, spaced)
			assert.Equal(t, tc.canonical, emit.Signature(spaced))
		})
	}
}

func TestParseMethod_BracketDepth(t *testing.T) {
	m, err := ParseMethod("public Dictionary<string, List<int>> Group(Func<(int, int), Dictionary<int, string>> f, int[,] grid)")
	require.NoError(t, err)

	assert.Equal(t, "Dictionary<string, List<int>>", m.ReturnType)
	require.Len(t, m.Parameters, 2)
	assert.Equal(t, "Func<(int, int), Dictionary<int, string>>", m.Parameters[0].Type)
	assert.Equal(t, "f", m.Parameters[0].Name)
	assert.Equal(t, "int[,]", m.Parameters[1].Type)
}

func TestParseMethod_Nullable(t *testing.T) {
	m, err := ParseMethod("public string? Find(int? id, List<string?>? names)")
	require.NoError(t, err)

	assert.Equal(t, "string?", m.ReturnType)
	require.Len(t, m.Parameters, 2)
	assert.Equal(t, "int?", m.Parameters[0].Type)
	assert.Equal(t, "List<string?>?", m.Parameters[1].Type)
}

func TestParseMethod_Extension(t *testing.T) {
	m, err := ParseMethod("public static string Shout(this string s, int times = 1)")
	require.NoError(t, err)

	assert.True(t, m.IsExtension())
	assert.Equal(t, "string", m.ExtensionTarget())
	assert.True(t, m.Modifiers.Has(decl.ModStatic))
	require.Len(t, m.Parameters, 2)
	assert.True(t, m.Parameters[1].HasDefault)
	assert.Equal(t, "1", m.Parameters[1].Default)
}

func TestParseMethod_Constraints(t *testing.T) {
	m, err := ParseMethod("public TOut Convert<TIn, TOut>(TIn input) where TIn : class, IDisposable where TOut : struct")
	require.NoError(t, err)

	require.Len(t, m.TypeParameters, 2)
	assert.Equal(t, "TIn", m.TypeParameters[0].Name)
	require.Len(t, m.Constraints, 2)
	assert.Equal(t, decl.Constraint{Param: "TIn", Clauses: []string{"class", "IDisposable"}}, m.Constraints[0])
	assert.Equal(t, decl.Constraint{Param: "TOut", Clauses: []string{"struct"}}, m.Constraints[1])
}

func TestParseMethod_ExpressionBody(t *testing.T) {
	m, err := ParseMethod("public int Twice(int x) => x * 2;")
	require.NoError(t, err)
	assert.Equal(t, "x * 2", m.Body.Expression)
}

func TestParseConstructor_Initializer(t *testing.T) {
	c, err := ParseConstructor("public Widget(string name, int size) : base(name, Compute(size, 2))")
	require.NoError(t, err)

	assert.Equal(t, "Widget", c.Name)
	assert.Equal(t, decl.BaseInitializer, c.Initializer)
	assert.Equal(t, []string{"name", "Compute(size, 2)"}, c.InitializerArgs)
}

func TestParseProperty(t *testing.T) {
	testCases := []struct {
		name        string
		signature   string
		accessors   string
		initializer string
		expression  string
	}{
		{name: "auto", signature: "public int Count { get; set; }", accessors: "{ get; set; }"},
		{name: "read only", signature: "public int Count { get; }", accessors: "{ get; }"},
		{name: "init", signature: "public string Id { get; init; } = Guid.NewGuid().ToString()", accessors: "{ get; init; }", initializer: "Guid.NewGuid().ToString()"},
		{name: "private setter", signature: "public int Count { get; private set; }", accessors: "{ get; private set; }"},
		{name: "expression", signature: "public bool Empty => Count == 0", accessors: "{ get; }", expression: "Count == 0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := ParseProperty(tc.signature)
			require.NoError(t, err)
			assert.Equal(t, tc.accessors, p.Accessors.String())
			assert.Equal(t, tc.initializer, p.Initializer)
			assert.Equal(t, tc.expression, p.Expression)
		})
	}
}

func TestParseIndexer(t *testing.T) {
	x, err := ParseIndexer("public virtual string this[int row, int col] { get; protected set; }")
	require.NoError(t, err)

	assert.Equal(t, "string", x.Type)
	assert.True(t, x.Modifiers.Has(decl.ModVirtual))
	require.Len(t, x.Parameters, 2)
	setter, ok := x.Accessors.Find(decl.Set)
	require.True(t, ok)
	assert.Equal(t, decl.Protected, setter.Access)
}

func TestParseOperator(t *testing.T) {
	testCases := []struct {
		signature  string
		symbol     string
		conversion decl.ConversionKind
		returnType string
	}{
		{signature: "public static Money operator +(Money a, Money b)", symbol: "+", returnType: "Money"},
		{signature: "public static bool operator !=(Money a, Money b)", symbol: "!=", returnType: "bool"},
		{signature: "public static bool operator true(Money a)", symbol: "true", returnType: "bool"},
		{signature: "public static Money operator <<(Money a, int n)", symbol: "<<", returnType: "Money"},
		{signature: "public static implicit operator decimal(Money m)", conversion: decl.Implicit, returnType: "decimal"},
		{signature: "public static explicit operator Money(decimal d)", conversion: decl.Explicit, returnType: "Money"},
	}

	for _, tc := range testCases {
		t.Run(tc.signature, func(t *testing.T) {
			o, err := ParseOperator(tc.signature)
			require.NoError(t, err)
			assert.Equal(t, tc.symbol, o.Symbol)
			assert.Equal(t, tc.conversion, o.Conversion)
			assert.Equal(t, tc.returnType, o.ReturnType)
		})
	}
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("[Serializable] public abstract partial class Repository<T> : RepositoryBase<T>, IDisposable where T : class, new()")
	require.NoError(t, err)

	assert.Equal(t, decl.ClassKind, typ.TypeKind)
	assert.Equal(t, "Repository<T>", typ.FullName())
	assert.True(t, typ.Modifiers.Has(decl.ModAbstract))
	assert.True(t, typ.Modifiers.Has(decl.ModPartial))
	assert.Equal(t, []string{"RepositoryBase<T>", "IDisposable"}, typ.BaseTypes)
	require.Len(t, typ.Constraints, 1)
	assert.Equal(t, []string{"class", "new()"}, typ.Constraints[0].Clauses)
	require.Len(t, typ.Attributes, 1)
	assert.Equal(t, "Serializable", typ.Attributes[0].Name)

	rec, err := ParseType("public record Person(string First, string Last) : Entity { }")
	require.NoError(t, err)
	assert.Equal(t, decl.RecordKind, rec.TypeKind)
	assert.True(t, rec.HasPrimary)
	assert.Len(t, rec.PrimaryParameters, 2)

	en, err := ParseType("internal enum Level : short")
	require.NoError(t, err)
	assert.Equal(t, "short", en.EnumBase)
	assert.Empty(t, en.BaseTypes)
}

func TestParseParameter(t *testing.T) {
	testCases := []struct {
		signature string
		typ       string
		name      string
		refKind   decl.RefKind
		receiver  decl.Receiver
		def       string
	}{
		{signature: "ref int count", typ: "int", name: "count", refKind: decl.Ref},
		{signature: "out var result", typ: "var", name: "result", refKind: decl.Out},
		{signature: "params string[] args", typ: "string[]", name: "args", receiver: decl.ParamsArray},
		{signature: "this IEnumerable<T> source", typ: "IEnumerable<T>", name: "source", receiver: decl.ThisReceiver},
		{signature: "string name = null", typ: "string", name: "name", def: "null"},
		{signature: "[NotNull] in ReadOnlySpan<char> text", typ: "ReadOnlySpan<char>", name: "text", refKind: decl.In},
	}

	for _, tc := range testCases {
		t.Run(tc.signature, func(t *testing.T) {
			p, err := ParseParameter(tc.signature)
			require.NoError(t, err)
			assert.Equal(t, tc.typ, p.Type)
			assert.Equal(t, tc.name, p.Name)
			assert.Equal(t, tc.refKind, p.RefKind)
			assert.Equal(t, tc.receiver, p.Receiver)
			assert.Equal(t, tc.def, p.Default)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	testCases := []struct {
		name      string
		signature string
	}{
		{name: "empty", signature: ""},
		{name: "blank", signature: "   "},
		{name: "terminator only", signature: ";"},
		{name: "modifiers only", signature: "public static"},
		{name: "missing name", signature: "public void ()"},
		{name: "unterminated parameters", signature: "public void Run(int a"},
		{name: "parameter without name", signature: "public void Run(int)"},
		{name: "this not first", signature: "public static void Run(int a, this string s)"},
		{name: "params not last", signature: "public void Run(params int[] a, int b)"},
		{name: "two ref kinds", signature: "public void Run(ref out int a)"},
		{name: "trailing tokens", signature: "public void Run() extra"},
		{name: "duplicate modifier", signature: "public static static void Run()"},
		{name: "modifier not valid for field", signature: "public abstract int count"},
		{name: "unbalanced generic", signature: "public Dictionary<string, int Run()"},
		{name: "operator arity", signature: "public static Money operator *(Money a)"},
		{name: "not overloadable", signature: "public static Money operator =(Money a, Money b)"},
		{name: "conversion arity", signature: "public static implicit operator int(A a, A b)"},
		{name: "duplicate accessor", signature: "public int X { get; get; }"},
		{name: "set and init", signature: "public int X { get; set; init; }"},
		{name: "empty accessor list", signature: "public int X { }"},
		{name: "extension constructor", signature: "public Widget(this string s)"},
		{name: "generic enum", signature: "public enum Bad<T>"},
		{name: "unrecognized character", signature: "public void Run() §"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Parse(tc.signature)
			require.Error(t, err)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, cserrors.ErrInvalidSignature)
		})
	}
}

func TestParseAs_WrongKind(t *testing.T) {
	_, err := ParseField("public void Run()")
	require.Error(t, err)
	assert.ErrorIs(t, err, cserrors.ErrInvalidSignature)

	_, err = ParseMethod("public int Count { get; }")
	assert.ErrorIs(t, err, cserrors.ErrInvalidSignature)
}

func TestParse_ContinuesAsBuilder(t *testing.T) {
	m, err := ParseMethod("public int Add(int a, int b)")
	require.NoError(t, err)

	m = m.AddReturn("a + b").WithSummary("Adds two numbers")
	out := emit.RenderMember(m, emit.Options{LineEnding: "\n"})

	expected := `/// <summary>
/// Adds two numbers
/// </summary>
public int Add(int a, int b)
{
    return a + b;
}
`
	assert.Equal(t, expected, out)
}
